package render

import (
	"bufio"
	"cvrp-route-service/internal/domain"
	"errors"
	"fmt"
	"html"
	"io"

	"github.com/paulmach/orb"
)

// tab20 palette; route k uses palette[k % 20].
var palette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

const (
	canvasSize = 800.0
	markerSize = 5.0
)

// Viewport returns the drawing bounds: the bounding box of every node,
// scaled by 1.1 around its centre so edge nodes are not clipped.
func Viewport(inst *domain.Instance) orb.Bound {
	mp := make(orb.MultiPoint, 0, len(inst.Coords))
	for _, p := range inst.Coords {
		mp = append(mp, orb.Point{p.X, p.Y})
	}

	b := mp.Bound()
	c := b.Center()
	w := (b.Right() - b.Left()) * 1.1 / 2
	h := (b.Top() - b.Bottom()) * 1.1 / 2
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	return orb.Bound{
		Min: orb.Point{c.X() - w, c.Y() - h},
		Max: orb.Point{c.X() + w, c.Y() + h},
	}
}

// SVG draws sol over inst: the depot as a red square, each route in its own
// colour with legs from and back to the depot, and customers as dots.
func SVG(w io.Writer, inst *domain.Instance, sol domain.Solution, title string) error {
	if inst == nil || inst.Len() == 0 {
		return errors.New("render svg: instance has no nodes")
	}

	vp := Viewport(inst)
	sx := canvasSize / (vp.Right() - vp.Left())
	sy := canvasSize / (vp.Top() - vp.Bottom())
	project := func(v int) (float64, float64) {
		p := inst.Coords[v]
		// SVG y grows downwards.
		return (p.X - vp.Left()) * sx, (vp.Top() - p.Y) * sy
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 -30 %.0f %.0f">`+"\n",
		canvasSize, canvasSize+30, canvasSize, canvasSize+30)
	fmt.Fprintf(bw, `<text x="%.1f" y="-10" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+"\n",
		canvasSize/2, html.EscapeString(title))

	for k, route := range sol {
		if len(route) == 0 {
			continue
		}
		for _, v := range route {
			if v < 0 || v >= inst.Len() {
				return fmt.Errorf("render svg: route %d: node %d out of range", k, v)
			}
		}

		color := palette[k%len(palette)]

		fmt.Fprintf(bw, `<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color)
		x, y := project(inst.Depot)
		fmt.Fprintf(bw, "%.2f,%.2f", x, y)
		for _, v := range route {
			x, y = project(v)
			fmt.Fprintf(bw, " %.2f,%.2f", x, y)
		}
		x, y = project(inst.Depot)
		fmt.Fprintf(bw, " %.2f,%.2f\"/>\n", x, y)

		for _, v := range route {
			x, y = project(v)
			fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n", x, y, markerSize/2, color)
		}
	}

	x, y := project(inst.Depot)
	fmt.Fprintf(bw, `<rect x="%.2f" y="%.2f" width="%.1f" height="%.1f" fill="red"/>`+"\n",
		x-markerSize/2, y-markerSize/2, markerSize, markerSize)
	bw.WriteString("</svg>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}
