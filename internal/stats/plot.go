package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelMid        = "mid"
	axisLabelBottom     = "min"
	axisSeparator       = " │ "
	scaleNote           = "Scaled per series; see min/max below."
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// dash patterns let overlapping series stay distinguishable without color.
var dashes = []struct {
	name   string
	period int
	on     int
}{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var palette = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m"}

// braille dot bits indexed by [row][column] inside a 2x4 cell.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// canvas holds one braille bitmap per series.
type canvas struct {
	width  int
	height int
	layers [][]uint8
}

func newCanvas(width, height, layers int) *canvas {
	c := &canvas{width: width, height: height, layers: make([][]uint8, layers)}
	for i := range c.layers {
		c.layers[i] = make([]uint8, width*height)
	}
	return c
}

// dot sets a sub-cell pixel; px spans 2*width and py spans 4*height.
func (c *canvas) dot(layer, px, py int) {
	cx, cy := px/2, py/4
	if px < 0 || py < 0 || cx >= c.width || cy >= c.height {
		return
	}
	c.layers[layer][cy*c.width+cx] |= brailleBits[py%4][px%2]
}

// line draws a Bresenham segment, skipping pixels outside the dash pattern.
func (c *canvas) line(layer, x0, y0, x1, y1 int) {
	pattern := dashes[layer%len(dashes)]
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if abs(x0)%pattern.period < pattern.on {
			c.dot(layer, x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// cell merges all layers and reports the first layer that owns a dot.
func (c *canvas) cell(x, y int) (rune, int) {
	var mask uint8
	owner := -1
	for i, layer := range c.layers {
		bits := layer[y*c.width+x]
		if bits != 0 && owner < 0 {
			owner = i
		}
		mask |= bits
	}
	return rune(0x2800 + int(mask)), owner
}

// PlotSeries renders a multi-line text plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return PlotSeriesWithColor(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a multi-line text plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = lo.Filter(series, func(s Series, _ int) bool {
		return len(s.Values) > 0
	})
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	c := newCanvas(width, height, len(series))
	ranges := make([][2]float64, len(series))
	for i, s := range series {
		values := resample(s.Values, width)
		lowest, highest := lo.Min(values), lo.Max(values)
		if math.Abs(highest-lowest) < 1e-9 {
			lowest--
			highest++
		}
		ranges[i] = [2]float64{lowest, highest}
		rows := height * 4
		prevX, prevY := -1, -1
		for x, v := range values {
			y := int(math.Round((1 - (v-lowest)/(highest-lowest)) * float64(rows-1)))
			y = lo.Clamp(y, 0, rows-1)
			if prevX < 0 {
				c.line(i, x*2, y, x*2, y)
			} else {
				c.line(i, prevX, prevY, x*2, y)
			}
			prevX, prevY = x*2, y
		}
	}

	useColor := colorEnabled(w, forceColor)
	var out []string
	if title != "" {
		out = append(out, title)
	}
	out = append(out, scaleNote)
	for i, s := range series {
		out = append(out, fmt.Sprintf("%s: min=%.2f max=%.2f", s.Name, ranges[i][0], ranges[i][1]))
	}
	labels := axisLabels(height)
	labelWidth := runewidth.StringWidth(axisLabelTop)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(runewidth.FillLeft(labels[y], labelWidth))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			ch, owner := c.cell(x, y)
			if useColor && owner >= 0 {
				row.WriteString(palette[owner%len(palette)] + string(ch) + colorReset)
				continue
			}
			row.WriteRune(ch)
		}
		out = append(out, row.String())
	}
	out = append(out, legend(series, useColor), "")
	for _, line := range out {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := runewidth.StringWidth(axisLabelTop) + runewidth.StringWidth(axisSeparator)
	return max(totalWidth-axisWidth, minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func colorEnabled(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func axisLabels(height int) []string {
	labels := make([]string, height)
	labels[0] = axisLabelTop
	if height > 2 {
		labels[height/2] = axisLabelMid
	}
	if height > 1 {
		labels[height-1] = axisLabelBottom
	}
	return labels
}

func legend(series []Series, useColor bool) string {
	parts := lo.Map(series, func(s Series, i int) string {
		label := fmt.Sprintf("%c %s (%s)", rune(0x2801), s.Name, dashes[i%len(dashes)].name)
		if useColor {
			return palette[i%len(palette)] + label + colorReset
		}
		return label
	})
	return "Legend: " + strings.Join(parts, "  ")
}

// resample fits values to width points, averaging buckets when shrinking and
// interpolating linearly when stretching.
func resample(values []float64, width int) []float64 {
	n := len(values)
	out := make([]float64, width)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			out[i] = lo.Sum(values[start:end]) / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
