package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// pngBase64 renders a small gradient PNG and returns it base64 encoded.
func pngBase64(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestProcess_DataURI(t *testing.T) {
	p := NewProcessor(testLogger())

	dataURI := "data:image/png;base64," + pngBase64(t, 32, 48)

	result, err := p.Process(dataURI)
	require.NoError(t, err)

	assert.Equal(t, "png", result.Format)
	assert.Equal(t, 32, result.Width)
	assert.Equal(t, 48, result.Height)
	assert.NotEmpty(t, result.BlurHash)
	assert.True(t, strings.HasPrefix(result.DataURI, "data:image/png;base64,"))
}

func TestProcess_BareBase64(t *testing.T) {
	p := NewProcessor(testLogger())

	result, err := p.Process(pngBase64(t, 16, 16))
	require.NoError(t, err)
	assert.Equal(t, "png", result.Format)
}

func TestProcess_RejectsGarbage(t *testing.T) {
	p := NewProcessor(testLogger())

	_, err := p.Process("definitely not base64 image data!!!")
	assert.Error(t, err)
}

func TestProcess_RejectsNonImagePayload(t *testing.T) {
	p := NewProcessor(testLogger())

	payload := base64.StdEncoding.EncodeToString([]byte("just some text"))
	_, err := p.Process(payload)
	assert.Error(t, err)
}

func TestProcess_RejectsOversizedDimensions(t *testing.T) {
	p := NewProcessor(testLogger())

	_, err := p.Process(pngBase64(t, MaxDimension+1, 10))
	assert.Error(t, err)
}

func TestComputeBlurHash_SmallImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestComputeBlurHash_LargeImageResized(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 512, 256))
	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}
