// Package render draws a pipeline.Snapshot as an SVG shot chart.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/pable/go-shotmap/internal/hexbin"
	"github.com/pable/go-shotmap/internal/pipeline"
)

// WriteSVG renders the snapshot onto an SVG canvas: rink outline, hex cells,
// the high-danger marker overlay, and a caption. The drawing layer consumes
// pure data from the snapshot; it never recomputes bins or colors.
func WriteSVG(w io.Writer, snap pipeline.Snapshot, lay pipeline.Layout, title string) {
	width := int(lay.Width)
	height := int(lay.Height)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white;stroke:none")

	drawRink(canvas, lay)
	drawBins(canvas, snap)
	drawMarkers(canvas, snap)
	drawCaption(canvas, snap, lay, title)

	canvas.End()
}

// drawRink sketches the plot area as a rink: rounded boards, center red
// line, and the two blue lines at one third of each half.
func drawRink(canvas *svg.SVG, lay pipeline.Layout) {
	rect := lay.PlotRect()
	x := int(rect.MinX)
	y := int(rect.MinY)
	w := int(rect.MaxX - rect.MinX)
	h := int(rect.MaxY - rect.MinY)
	corner := h / 5

	canvas.Roundrect(x, y, w, h, corner, corner, "fill:#f7fbff;stroke:#9ecae1;stroke-width:2")

	midX := x + w/2
	canvas.Line(midX, y, midX, y+h, "stroke:#e15759;stroke-width:2;stroke-opacity:0.6")

	blueOff := w / 6
	canvas.Line(midX-blueOff, y, midX-blueOff, y+h, "stroke:#4e79a7;stroke-width:2;stroke-opacity:0.6")
	canvas.Line(midX+blueOff, y, midX+blueOff, y+h, "stroke:#4e79a7;stroke-width:2;stroke-opacity:0.6")

	canvas.Circle(midX, y+h/2, h/8, "fill:none;stroke:#4e79a7;stroke-opacity:0.4")
}

func drawBins(canvas *svg.SVG, snap pipeline.Snapshot) {
	for i := range snap.Bins {
		b := &snap.Bins[i]
		vx, vy := hexbin.Vertices(b.CenterX, b.CenterY, snap.HexRadius)
		xs := make([]int, len(vx))
		ys := make([]int, len(vy))
		for k := range vx {
			xs[k] = int(vx[k] + 0.5)
			ys[k] = int(vy[k] + 0.5)
		}
		style := fmt.Sprintf("fill:%s;fill-opacity:0.85;stroke:none", snap.Colors[i])
		canvas.Polygon(xs, ys, style)
	}
}

func drawMarkers(canvas *svg.SVG, snap pipeline.Snapshot) {
	for _, m := range snap.Markers {
		canvas.Circle(int(m.X+0.5), int(m.Y+0.5),
			int(m.Radius+0.5),
			"fill:none;stroke:#d62728;stroke-width:1.5;stroke-opacity:0.7")
	}
}

func drawCaption(canvas *svg.SVG, snap pipeline.Snapshot, lay pipeline.Layout, title string) {
	y := int(lay.Height) - 8
	canvas.Gstyle("font-family:Helvetica,sans-serif;font-size:13px;fill:gray")
	if title != "" {
		canvas.Text(int(lay.Margin), int(lay.Margin)-8, title)
	}
	avg := 0.0
	if snap.FilteredCount > 0 {
		avg = snap.FilteredXG / float64(snap.FilteredCount)
	}
	canvas.Text(int(lay.Margin), y,
		fmt.Sprintf("%d of %d shots  |  %.2f xG  |  %.3f avg xG",
			snap.FilteredCount, snap.Summary.TotalCount, snap.FilteredXG, avg))
	canvas.Gend()
}
