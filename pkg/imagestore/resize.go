package imagestore

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FitBounds returns the target dimensions for fitting (srcW, srcH) inside
// (maxW, maxH) while preserving aspect ratio. Images smaller than the bounds
// are not upscaled.
func FitBounds(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}

	ratioW := float64(maxW) / float64(srcW)
	ratioH := float64(maxH) / float64(srcH)
	ratio := ratioW
	if ratioH < ratioW {
		ratio = ratioH
	}

	w := int(float64(srcW) * ratio)
	h := int(float64(srcH) * ratio)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Resize scales src to fit inside (maxW, maxH), preserving aspect ratio.
func Resize(src image.Image, maxW, maxH int) image.Image {
	bounds := src.Bounds()
	w, h := FitBounds(bounds.Dx(), bounds.Dy(), maxW, maxH)
	if w == bounds.Dx() && h == bounds.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
