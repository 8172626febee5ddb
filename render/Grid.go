// Package render draws finished results as images and charts
package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/tabular/agent/tabular/dp"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"gonum.org/v1/gonum/mat"
)

// CellSize is the side length of a grid cell in pixels
const CellSize = 96

var (
	terminalShade = color.RGBA{0x90, 0x90, 0x90, 0xff}
	gridColour    = color.RGBA{0x20, 0x20, 0x20, 0xff}
	arrowColour   = color.RGBA{0xc0, 0x20, 0x20, 0xff}
)

// GridPNG draws the values V of a gridworld with the arrows of policy
// and writes the image to w as a PNG. Cells missing from the policy are
// drawn as terminal cells. Lighter cells have higher values.
func GridPNG(w io.Writer, V mat.Matrix, policy dp.Policy) error {
	r, c := V.Dims()
	dc := gg.NewContext(c*CellSize, r*CellSize)
	dc.SetColor(color.White)
	dc.Clear()

	lo, hi := bounds(V)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x, y := float64(j*CellSize), float64(i*CellSize)
			a, ok := policy[gridworld.Cell{Row: i, Col: j}]

			dc.DrawRectangle(x, y, CellSize, CellSize)
			if ok {
				dc.SetColor(shade(V.At(i, j), lo, hi))
			} else {
				dc.SetColor(terminalShade)
			}
			dc.Fill()

			dc.SetColor(gridColour)
			dc.DrawStringAnchored(fmt.Sprintf("%.2f", V.At(i, j)),
				x+CellSize/2, y+CellSize/5, 0.5, 0.5)
			if ok {
				drawArrow(dc, x+CellSize/2, y+CellSize*3/5, a)
			}
		}
	}

	// Grid lines
	dc.SetColor(gridColour)
	dc.SetLineWidth(2)
	for i := 0; i <= r; i++ {
		dc.DrawLine(0, float64(i*CellSize), float64(c*CellSize),
			float64(i*CellSize))
	}
	for j := 0; j <= c; j++ {
		dc.DrawLine(float64(j*CellSize), 0, float64(j*CellSize),
			float64(r*CellSize))
	}
	dc.Stroke()

	return dc.EncodePNG(w)
}

// drawArrow draws an arrow centred on (x, y) pointing in the direction
// of a
func drawArrow(dc *gg.Context, x, y float64, a gridworld.Action) {
	const half, head = CellSize / 5, CellSize / 12

	var dx, dy float64
	switch a {
	case gridworld.Up:
		dy = -1
	case gridworld.Down:
		dy = 1
	case gridworld.Left:
		dx = -1
	case gridworld.Right:
		dx = 1
	}

	tipX, tipY := x+dx*half, y+dy*half
	dc.SetColor(arrowColour)
	dc.SetLineWidth(3)
	dc.DrawLine(x-dx*half, y-dy*half, tipX, tipY)

	// Head, swept back from the tip on either side of the shaft
	dc.DrawLine(tipX, tipY, tipX-dx*head-dy*head, tipY-dy*head-dx*head)
	dc.DrawLine(tipX, tipY, tipX-dx*head+dy*head, tipY-dy*head+dx*head)
	dc.Stroke()
}

// bounds returns the smallest and largest values of V
func bounds(V mat.Matrix) (lo, hi float64) {
	return mat.Min(V), mat.Max(V)
}

// shade maps v in [lo, hi] to a blue, lightest at hi
func shade(v, lo, hi float64) color.Color {
	t := 1.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	return color.RGBA{
		R: uint8(0x40 + t*0xb0),
		G: uint8(0x60 + t*0x90),
		B: 0xff,
		A: 0xff,
	}
}
