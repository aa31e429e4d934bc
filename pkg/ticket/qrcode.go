package ticket

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCodePNG encodes text as a size x size PNG QR code with medium error
// correction.
func QRCodePNG(text string, size int) ([]byte, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pngBytes, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR to PNG: %w", err)
	}

	return pngBytes, nil
}
