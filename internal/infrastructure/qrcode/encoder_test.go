package qrcode_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/infrastructure/qrcode"
)

func TestEncoder_EncodePNG(t *testing.T) {
	enc := qrcode.NewEncoder()

	data, err := enc.EncodePNG("ACME-EMP-000001", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestEncoder_SizeMenorQueLaMatriz(t *testing.T) {
	data, err := qrcode.NewEncoder().EncodePNG("ACME-EMP-000001", 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 1)
}

func TestEncoder_ContenidoVacio(t *testing.T) {
	_, err := qrcode.NewEncoder().EncodePNG("", 128)
	assert.Error(t, err)
}
