package qrcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/jhoicas/asistencia-api/internal/application/ports"
)

var _ ports.QREncoder = (*Encoder)(nil)

// Encoder genera códigos QR en PNG con nivel de corrección M.
type Encoder struct{}

// NewEncoder construye el generador.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodePNG codifica content en un QR cuadrado de size x size píxeles.
func (e *Encoder) EncodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr: contenido vacío")
	}
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	// Scale falla si size es menor que la matriz del QR.
	if size < code.Bounds().Dx() {
		size = code.Bounds().Dx()
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qr scale: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
