// Package overlay draws the loading screen shown while textures stream in.
package overlay

import (
	"image"
	"image/color"
	"math"
	"time"
)

var (
	backdrop = color.RGBA{0, 0, 0, 255}
	track    = color.RGBA{60, 60, 70, 255}
	fill     = color.RGBA{90, 170, 255, 255}
	spinner  = color.RGBA{255, 255, 255, 255}
)

// Layout describes where Compose puts things, in pixels.
type Layout struct {
	Bar     image.Rectangle
	Spinner image.Point
	Radius  int
}

// LayoutFor centres a spinner above a progress bar.
func LayoutFor(width, height int) Layout {
	barW := max(width/3, 20)
	barH := max(height/80, 4)
	cx, cy := width/2, height/2
	radius := max(min(width, height)/16, 6)
	return Layout{
		Bar:     image.Rect(cx-barW/2, cy+radius+barH, cx+barW/2, cy+radius+2*barH),
		Spinner: image.Pt(cx, cy-radius/2),
		Radius:  radius,
	}
}

// Compose renders the overlay for percent (clamped to 0-100). phase turns
// the spinner; one full turn per 2*pi.
func Compose(width, height, percent int, phase float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	FillRect(img, img.Bounds(), backdrop)

	l := LayoutFor(width, height)
	FillRect(img, l.Bar, track)
	filled := l.Bar
	filled.Max.X = l.Bar.Min.X + l.Bar.Dx()*clampPercent(percent)/100
	FillRect(img, filled, fill)

	start := math.Mod(phase, 2*math.Pi)
	DrawArc(img, l.Spinner.X, l.Spinner.Y, l.Radius, max(l.Radius/5, 2), start, start+1.5*math.Pi, spinner)

	return img
}

// SpinnerAngle is the Compose phase at time now for a spinner making
// turnsPerSecond full turns each second.
func SpinnerAngle(now time.Duration, turnsPerSecond float64) float64 {
	return math.Mod(now.Seconds()*turnsPerSecond, 1) * 2 * math.Pi
}

func clampPercent(p int) int {
	return min(max(p, 0), 100)
}
