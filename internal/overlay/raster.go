package overlay

import (
	"image"
	"image/color"
	"math"
)

// DrawLine draws a line from (x1, y1) to (x2, y2) by stepping along the
// major axis. Pixels outside img are clipped.
func DrawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		plot(img, x1, y1, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x := float64(x1)
	y := float64(y1)

	for i := 0; i <= int(steps); i++ {
		plot(img, int(math.Round(x)), int(math.Round(y)), col)
		x += xInc
		y += yInc
	}
}

// FillRect fills r clipped to img.
func FillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			plot(img, x, y, col)
		}
	}
}

// DrawArc strokes a circular arc of the given thickness centred on (cx, cy),
// sweeping from start to end radians (clockwise on screen).
func DrawArc(img *image.RGBA, cx, cy, radius, thickness int, start, end float64, col color.RGBA) {
	if radius <= 0 || end <= start {
		return
	}
	segments := max(int(float64(radius)*(end-start)), 8)
	step := (end - start) / float64(segments)
	for ring := 0; ring < max(thickness, 1); ring++ {
		r := float64(radius - ring)
		px, py := arcPoint(cx, cy, r, start)
		for i := 1; i <= segments; i++ {
			x, y := arcPoint(cx, cy, r, start+step*float64(i))
			DrawLine(img, px, py, x, y, col)
			px, py = x, y
		}
	}
}

func arcPoint(cx, cy int, r, angle float64) (int, int) {
	sin, cos := math.Sincos(angle)
	return cx + int(math.Round(r*cos)), cy + int(math.Round(r*sin))
}

func plot(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	offset := img.PixOffset(x, y)
	img.Pix[offset] = col.R
	img.Pix[offset+1] = col.G
	img.Pix[offset+2] = col.B
	img.Pix[offset+3] = col.A
}
