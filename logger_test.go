package svgbox

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs installs a debug-level text logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("n", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs did not return a nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup did not return a nopHandler")
	}
}

func TestLogger_DefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger_Nil(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestLogger_Records(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
		want string
	}{
		{
			name: "render",
			run: func(t *testing.T) {
				doc, _ := testDocument()
				if _, err := doc.Render(); err != nil {
					t.Fatalf("Render: %v", err)
				}
			},
			want: `msg="svgbox: render" rasterizer=mock width=100 height=50`,
		},
		{
			name: "skipped render",
			run: func(t *testing.T) {
				doc, _ := testDocument()
				doc.Tree().SkipRender = true
				if _, err := doc.Render(); err != nil {
					t.Fatalf("Render: %v", err)
				}
			},
			want: `msg="svgbox: render skipped"`,
		},
		{
			name: "pixel crop outside",
			run: func(t *testing.T) {
				doc, _ := testDocument(WithPixelCrop(PixelCrop{Left: 150, Right: 200}))
				if _, err := doc.Render(); err != nil {
					t.Fatalf("Render: %v", err)
				}
			},
			want: `level=WARN msg="svgbox: pixel crop outside the image ignored"`,
		},
		{
			name: "image resolved",
			run: func(t *testing.T) {
				tree := NewTree(10, 10)
				tree.Add(tree.Root(), &ImageNode{Href: "a.png", ViewRect: RectXYWH(0, 0, 4, 4)})
				if err := NewDocument(tree).ResolveImage("a.png", pngBytes(t, 2, 2)); err != nil {
					t.Fatalf("ResolveImage: %v", err)
				}
			},
			want: `href=a.png mime=image/png nodes=1`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			tt.run(t)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLogger_BBoxSilent(t *testing.T) {
	buf := captureLogs(t)
	doc, _ := testDocument()
	doc.InnerBBox()
	doc.GetBBox()
	if b, ok := doc.InnerBBox(); ok {
		doc.CropByBBox(b, WithPadding(2))
	}
	if buf.Len() != 0 {
		t.Errorf("bbox and crop logged %q", buf.String())
	}
}

func TestSetLogger_Propagation(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() {
		SetLogger(orig)
		resetRasterizer()
	})
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("to registered rasterizer", func(t *testing.T) {
		resetRasterizer()
		mock := &mockRasterizer{name: "registered"}
		if err := RegisterRasterizer(mock); err != nil {
			t.Fatalf("RegisterRasterizer: %v", err)
		}
		SetLogger(custom)
		if mock.logger != custom {
			t.Error("SetLogger did not reach the rasterizer")
		}
	})

	t.Run("on registration", func(t *testing.T) {
		resetRasterizer()
		SetLogger(custom)
		mock := &mockRasterizer{name: "late"}
		if err := RegisterRasterizer(mock); err != nil {
			t.Fatalf("RegisterRasterizer: %v", err)
		}
		if mock.logger != custom {
			t.Error("RegisterRasterizer did not pass the current logger")
		}
	})
}

func TestLogger_Concurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLogger_Disabled(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("svgbox: render", "width", 1, "height", 1)
	}
}
