package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// Processor produces listing thumbnails.
type Processor struct {
	maxEdge int // longest edge of a thumbnail, in pixels
	quality int // JPEG quality (1-100)
}

func NewProcessor(maxEdge, quality int) *Processor {
	if maxEdge <= 0 {
		maxEdge = 150
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		maxEdge: maxEdge,
		quality: quality,
	}
}

// Thumbnail decodes an image, scales it down to fit the configured edge
// preserving aspect ratio, and encodes it as JPEG. Images already small
// enough are re-encoded without scaling.
func (p *Processor) Thumbnail(reader io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.fit(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return &buf, nil
}

func (p *Processor) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= p.maxEdge && h <= p.maxEdge {
		return img
	}

	var newW, newH int
	if w >= h {
		newW = p.maxEdge
		newH = h * p.maxEdge / w
	} else {
		newH = p.maxEdge
		newW = w * p.maxEdge / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
