package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// composePanels stacks panel images top to bottom on a white canvas.
// Panels narrower or wider than the first one are scaled to its width.
func composePanels(panels []Panel) ([]byte, int, int, error) {
	if len(panels) == 0 {
		return nil, 0, 0, fmt.Errorf("no panels to compose")
	}

	images := make([]image.Image, len(panels))
	for i, p := range panels {
		img, err := png.Decode(bytes.NewReader(p.Artifact.image))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("panel %q: failed to decode image: %w", p.Column, err)
		}
		images[i] = img
	}

	width := images[0].Bounds().Dx()
	heights := make([]int, len(images))
	total := 0
	for i, img := range images {
		b := img.Bounds()
		heights[i] = b.Dy()
		if b.Dx() != width {
			heights[i] = b.Dy() * width / b.Dx()
		}
		total += heights[i]
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, total))
	xdraw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, xdraw.Src)

	y := 0
	for i, img := range images {
		dst := image.Rect(0, y, width, y+heights[i])
		if img.Bounds().Dx() == width {
			xdraw.Draw(canvas, dst, img, img.Bounds().Min, xdraw.Over)
		} else {
			xdraw.CatmullRom.Scale(canvas, dst, img, img.Bounds(), xdraw.Over, nil)
		}
		y += heights[i]
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return buf.Bytes(), width, total, nil
}
