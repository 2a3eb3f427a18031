package screen

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder for image.Decode
	_ "image/png"  // Register PNG decoder for image.Decode
	"math"
	"os"

	"github.com/kbinani/screenshot"
)

// Searcher handles screen capturing and template matching for one display.
type Searcher struct {
	DisplayIndex int
}

// NewSearcher creates a searcher for the main display.
func NewSearcher() *Searcher {
	return &Searcher{DisplayIndex: 0}
}

// SetDisplayID sets the target display index for capturing.
func (s *Searcher) SetDisplayID(index int) {
	s.DisplayIndex = index
}

// Origin returns the top-left corner of the configured display in global
// screen coordinates. Match positions are display-relative; clicks need
// Origin added.
func (s *Searcher) Origin() image.Point {
	return screenshot.GetDisplayBounds(s.DisplayIndex).Min
}

// LoadImage loads a PNG or JPEG template from the filesystem.
func (s *Searcher) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// Capture returns the current content of the configured display.
func (s *Searcher) Capture() (image.Image, error) {
	bounds := screenshot.GetDisplayBounds(s.DisplayIndex)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", s.DisplayIndex, err)
	}
	return img, nil
}

// Locate searches for template inside screenImg and returns the CENTER of
// the first match. Fully transparent template pixels act as wildcards.
// Scanning stops at the first hit; a not-found result is a normal outcome,
// not an error.
func (s *Searcher) Locate(screenImg, template image.Image, tolerance float64) (image.Point, bool) {
	sb := screenImg.Bounds()
	tb := template.Bounds()
	tw, th := tb.Dx(), tb.Dy()
	if tw == 0 || th == 0 || sb.Dx() < tw || sb.Dy() < th {
		return image.Point{}, false
	}

	// Three key template pixels for cheap rejection before the full scan:
	// top-left, center, bottom-right.
	keys := [3]image.Point{
		{0, 0},
		{tw / 2, th / 2},
		{tw - 1, th - 1},
	}

	for y := sb.Min.Y; y <= sb.Max.Y-th; y++ {
	next:
		for x := sb.Min.X; x <= sb.Max.X-tw; x++ {
			for _, k := range keys {
				tr, tg, tbl, ta := rgba(template, tb.Min.X+k.X, tb.Min.Y+k.Y)
				if ta == 0 {
					continue
				}
				sr, sg, sbl, _ := rgba(screenImg, x+k.X, y+k.Y)
				if !colorSimilar(sr, sg, sbl, tr, tg, tbl, tolerance) {
					continue next
				}
			}
			if matchAt(screenImg, template, x, y, tolerance) {
				return image.Point{X: x + tw/2, Y: y + th/2}, true
			}
		}
	}
	return image.Point{}, false
}

func matchAt(screenImg, template image.Image, sx, sy int, tolerance float64) bool {
	tb := template.Bounds()
	for ty := 0; ty < tb.Dy(); ty++ {
		for tx := 0; tx < tb.Dx(); tx++ {
			tr, tg, tbl, ta := rgba(template, tb.Min.X+tx, tb.Min.Y+ty)
			if ta == 0 {
				continue // transparent template pixel: wildcard
			}
			sr, sg, sbl, _ := rgba(screenImg, sx+tx, sy+ty)
			if !colorSimilar(sr, sg, sbl, tr, tg, tbl, tolerance) {
				return false
			}
		}
	}
	return true
}

func rgba(img image.Image, x, y int) (r, g, b, a uint32) {
	r, g, b, a = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8, a >> 8
}

// colorSimilar compares two colors by Euclidean distance in RGB space.
func colorSimilar(r1, g1, b1, r2, g2, b2 uint32, tolerance float64) bool {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr+dg*dg+db*db) <= tolerance
}
