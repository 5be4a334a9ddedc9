package scenefile

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/svgbox"
)

// argCount is the number of arguments per SVG path command.
var argCount = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
}

func skipCommaWhitespace(d []byte) int {
	i := 0
	for i < len(d) && (d[i] == ' ' || d[i] == ',' || d[i] == '\n' || d[i] == '\r' || d[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParsePathData parses SVG path data with the M, L, H, V, C, S, Q, T and Z
// commands in absolute and relative form. Arcs are rejected.
func ParsePathData(s string) (*svgbox.Path, error) {
	p := svgbox.NewPath()
	d := []byte(s)
	i := skipCommaWhitespace(d)
	if i == len(d) {
		return p, nil
	}
	if isNumberStart(d[i]) {
		return nil, fmt.Errorf("%w: data must start with a command", ErrPathData)
	}

	var f [6]float64
	var cur, start, lastCtrl svgbox.Point
	prev := byte('z')
	for {
		i += skipCommaWhitespace(d[i:])
		if i >= len(d) {
			break
		}

		cmd := prev
		if cmd == 'z' || cmd == 'Z' || !isNumberStart(d[i]) {
			cmd = d[i]
			i++
			i += skipCommaWhitespace(d[i:])
		}
		upper := cmd
		if 'a' <= cmd && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		n, ok := argCount[upper]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported command '%c' at position %d", ErrPathData, cmd, i)
		}
		for j := 0; j < n; j++ {
			num, k := strconv.ParseFloat(d[i:])
			if k == 0 {
				return nil, fmt.Errorf("%w: command '%c' needs %d numbers at position %d", ErrPathData, cmd, n, i+1)
			}
			f[j] = num
			i += k
			i += skipCommaWhitespace(d[i:])
		}

		rel := cmd != upper
		abs := func(x, y float64) svgbox.Point {
			if rel {
				return svgbox.Pt(cur.X+x, cur.Y+y)
			}
			return svgbox.Pt(x, y)
		}

		next := cmd
		switch upper {
		case 'M':
			cur = abs(f[0], f[1])
			start = cur
			p.MoveTo(cur.X, cur.Y)
			// Extra coordinate pairs after a move are line segments.
			next = 'L'
			if rel {
				next = 'l'
			}
		case 'Z':
			p.Close()
			cur = start
		case 'L':
			cur = abs(f[0], f[1])
			p.LineTo(cur.X, cur.Y)
		case 'H':
			x := f[0]
			if rel {
				x += cur.X
			}
			cur.X = x
			p.LineTo(cur.X, cur.Y)
		case 'V':
			y := f[0]
			if rel {
				y += cur.Y
			}
			cur.Y = y
			p.LineTo(cur.X, cur.Y)
		case 'C':
			c1, c2, end := abs(f[0], f[1]), abs(f[2], f[3]), abs(f[4], f[5])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl, cur = c2, end
		case 'S':
			c1 := cur
			if isCubic(prev) {
				c1 = mirror(lastCtrl, cur)
			}
			c2, end := abs(f[0], f[1]), abs(f[2], f[3])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl, cur = c2, end
		case 'Q':
			c, end := abs(f[0], f[1]), abs(f[2], f[3])
			p.QuadraticTo(c.X, c.Y, end.X, end.Y)
			lastCtrl, cur = c, end
		case 'T':
			c := cur
			if isQuad(prev) {
				c = mirror(lastCtrl, cur)
			}
			end := abs(f[0], f[1])
			p.QuadraticTo(c.X, c.Y, end.X, end.Y)
			lastCtrl, cur = c, end
		}
		prev = next
	}
	return p, nil
}

func isCubic(c byte) bool { return c == 'C' || c == 'c' || c == 'S' || c == 's' }
func isQuad(c byte) bool  { return c == 'Q' || c == 'q' || c == 'T' || c == 't' }

// mirror reflects ctrl about p.
func mirror(ctrl, p svgbox.Point) svgbox.Point {
	return p.Mul(2).Sub(ctrl)
}
