// Package qr renders provisioning URIs as scannable QR codes.
//
// Two output forms are supported: a standalone SVG document sized for a
// 50x50mm print viewport, and a PNG raster. Payloads that exceed the QR
// symbol capacity surface as ErrCapacityExceeded; an error is never embedded
// in the rendered output.
package qr

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrCapacityExceeded indicates the payload does not fit any QR symbol
// version at the medium recovery level.
var ErrCapacityExceeded = errors.New("qr: payload exceeds symbol capacity")

// SVG renders the payload as an SVG document. The viewBox spans the module
// grid including the quiet zone, one unit per module, scaled to a 50x50mm
// viewport; dark modules form a single path element.
func SVG(payload string) (string, error) {
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		// Encoding a text payload only fails when it cannot fit a symbol.
		return "", fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	}

	bitmap := code.Bitmap()
	size := len(bitmap)

	var path strings.Builder
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&path, "M%d %dh1v1h-1z", x, y)
			}
		}
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="50mm" height="50mm" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+
			`<rect width="%d" height="%d" fill="#ffffff"/>`+
			`<path d="%s" fill="#000000"/>`+
			`</svg>`,
		size, size, size, size, path.String(),
	), nil
}

// PNG renders the payload as a size x size pixel PNG image.
func PNG(payload string, size int) ([]byte, error) {
	img, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	}
	return img, nil
}
