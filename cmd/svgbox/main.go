// Command svgbox reports the bounding boxes of scene files and crops or
// renders them to PNG.
//
// Usage:
//
//	svgbox bbox   [flags] scene.yaml
//	svgbox crop   [flags] scene.yaml
//	svgbox render [flags] scene.yaml
//
// Flag defaults come from SVGBOX_* environment variables.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/svgbox"
	"github.com/gogpu/svgbox/internal/config"
	"github.com/gogpu/svgbox/internal/scenefile"
	_ "github.com/gogpu/svgbox/raster"
	"github.com/gogpu/svgbox/text"
)

const usage = "usage: svgbox bbox|crop|render [flags] scene.yaml"

var errUsage = errors.New(usage)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "svgbox:", err)
		os.Exit(1)
	}
}

type flags struct {
	fit        string
	background string
	output     string
	font       string
	images     string
	logLevel   string
	logFile    string
	padding    float64
	square     bool
	box        string
	pixelCrop  string
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "bbox", "crop", "render":
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var f flags
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.fit, "fit", cfg.Fit, "output size: original, width=N, height=N or zoom=N")
	fs.StringVar(&f.background, "background", cfg.Background, "background color")
	fs.StringVar(&f.output, "o", "out.png", "output PNG file")
	fs.StringVar(&f.font, "font", cfg.Font, "font file used to measure text nodes")
	fs.StringVar(&f.images, "images", cfg.ImageDir, "directory image hrefs are resolved against")
	fs.StringVar(&f.logLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", cfg.LogFile, "also log to this file, rotated")
	fs.Float64Var(&f.padding, "padding", cfg.Padding, "crop padding in output pixels")
	fs.BoolVar(&f.square, "square", cfg.Square, "crop to a square")
	fs.StringVar(&f.box, "box", "inner", "box to crop to: inner or dom")
	fs.StringVar(&f.pixelCrop, "pixel-crop", "", "left,top[,right,bottom] crop applied after rendering")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%s: expected one scene file\n%s", cmd, usage)
	}

	closeLog, err := setupLogging(f.logLevel, f.logFile, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	doc, err := load(fs.Arg(0), &f)
	if err != nil {
		return err
	}

	switch cmd {
	case "bbox":
		return writeBBoxes(stdout, doc)
	case "crop":
		if err := crop(doc, &f); err != nil {
			return err
		}
	}
	return render(doc, f.output)
}

// setupLogging points svgbox.Logger at stderr, and at a rotated file when
// file is set. The returned func closes the file.
func setupLogging(level, file string, stderr io.Writer) (func(), error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	w := stderr
	closeFn := func() {}
	if file != "" {
		lj := &lumberjack.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		w = io.MultiWriter(stderr, lj)
		closeFn = func() { _ = lj.Close() }
	}
	svgbox.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return closeFn, nil
}

// load decodes the scene, measures its text and resolves its images.
func load(path string, f *flags) (*svgbox.Document, error) {
	tree, err := scenefile.Load(path)
	if err != nil {
		return nil, err
	}
	log := svgbox.Logger()

	if f.font != "" {
		source, err := text.NewFontSourceFromFile(f.font)
		if err != nil {
			return nil, err
		}
		m, err := text.NewMeasurer(source)
		if err != nil {
			return nil, err
		}
		text.Annotate(tree, m)
	}

	fit, err := svgbox.ParseFitTo(f.fit)
	if err != nil {
		return nil, err
	}
	bg, err := scenefile.ParseColor(f.background)
	if err != nil {
		return nil, err
	}
	crop, err := parsePixelCrop(f.pixelCrop)
	if err != nil {
		return nil, err
	}
	doc := svgbox.NewDocument(tree,
		svgbox.WithFitTo(fit),
		svgbox.WithBackground(bg),
		svgbox.WithPixelCrop(crop),
	)

	for _, href := range doc.ImagesToResolve() {
		data, err := os.ReadFile(filepath.Join(f.images, filepath.FromSlash(href)))
		if err != nil {
			log.Warn("svgbox: image not loaded", "href", href, "err", err)
			continue
		}
		if err := doc.ResolveImage(href, data); err != nil {
			log.Warn("svgbox: image not resolved", "href", href, "err", err)
		}
	}
	return doc, nil
}

type bboxReport struct {
	Inner *svgbox.BBox `json:"inner"`
	DOM   *svgbox.BBox `json:"dom"`
}

func present(b svgbox.BBox, ok bool) *svgbox.BBox {
	if !ok {
		return nil
	}
	return &b
}

// writeBBoxes prints both boxes as JSON. Absent boxes are null.
func writeBBoxes(w io.Writer, doc *svgbox.Document) error {
	report := bboxReport{
		Inner: present(doc.InnerBBox()),
		DOM:   present(doc.GetBBox()),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func crop(doc *svgbox.Document, f *flags) error {
	var (
		b  svgbox.BBox
		ok bool
	)
	switch f.box {
	case "inner":
		b, ok = doc.InnerBBox()
	case "dom":
		b, ok = doc.GetBBox()
	default:
		return fmt.Errorf("unknown box %q, want inner or dom", f.box)
	}
	if !ok {
		svgbox.Logger().Warn("svgbox: nothing visible, rendering uncropped")
		return nil
	}
	res, _ := doc.CropByBBox(b, svgbox.WithPadding(f.padding), svgbox.WithSquare(f.square))
	svgbox.Logger().Info("svgbox: cropped",
		"box", f.box, "view", res.View, "size", res.Size, "empty", res.Empty)
	return nil
}

func render(doc *svgbox.Document, output string) error {
	pm, err := doc.Render()
	if err != nil {
		return err
	}
	if err := pm.SavePNG(output); err != nil {
		return err
	}
	svgbox.Logger().Info("svgbox: wrote", "file", output, "width", pm.Width(), "height", pm.Height())
	return nil
}

// parsePixelCrop reads "left,top" or "left,top,right,bottom".
func parsePixelCrop(s string) (svgbox.PixelCrop, error) {
	if strings.TrimSpace(s) == "" {
		return svgbox.PixelCrop{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 4 {
		return svgbox.PixelCrop{}, fmt.Errorf("pixel crop %q: want 2 or 4 integers", s)
	}
	v := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return svgbox.PixelCrop{}, fmt.Errorf("pixel crop %q: bad value %q", s, p)
		}
		v[i] = n
	}
	return svgbox.PixelCrop{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}
