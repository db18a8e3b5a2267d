// Package images validates and processes uploaded profile images.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log/slog"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP decoder

	domainerrors "github.com/mangaportal/mangaportal-server/internal/errors"
)

// Upload limits for profile images.
const (
	// MaxImageBytes bounds decoded upload size (2 MiB).
	MaxImageBytes = 2 << 20

	// MaxDimension bounds width and height of an uploaded image.
	MaxDimension = 2048
)

// Processed is the result of validating an uploaded profile image.
type Processed struct {
	// DataURI is the normalized data URI clients can render directly.
	DataURI string

	// BlurHash is the placeholder hash for progressive loading.
	BlurHash string

	Format string
	Width  int
	Height int
}

// Processor validates uploaded profile images and computes their BlurHash.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{logger: logger}
}

// Process decodes a data URI or bare base64 payload, enforces size and
// dimension limits, and returns the normalized result.
func (p *Processor) Process(dataURI string) (*Processed, error) {
	raw, declaredMIME, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, domainerrors.Validation("invalid image payload").WithCause(err)
	}

	if len(raw) > MaxImageBytes {
		return nil, domainerrors.Validation(
			fmt.Sprintf("image too large: %d bytes (max %d)", len(raw), MaxImageBytes))
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, domainerrors.Validation("unsupported image format").WithCause(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		return nil, domainerrors.Validation(
			fmt.Sprintf("image dimensions %dx%d exceed maximum %d",
				bounds.Dx(), bounds.Dy(), MaxDimension))
	}

	hash, err := ComputeBlurHash(img)
	if err != nil {
		// BlurHash is a nice-to-have; the upload still succeeds.
		p.logger.Warn("failed to compute blurhash", "error", err)
		hash = ""
	}

	mime := "image/" + format
	if declaredMIME != "" && declaredMIME != mime {
		p.logger.Debug("declared MIME differs from detected format",
			"declared", declaredMIME, "detected", mime)
	}

	return &Processed{
		DataURI:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw),
		BlurHash: hash,
		Format:   format,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// decodeDataURI accepts "data:image/png;base64,..." or a bare base64
// string and returns the raw bytes plus the declared MIME type, if any.
func decodeDataURI(s string) ([]byte, string, error) {
	mime := ""
	payload := s

	if strings.HasPrefix(s, "data:") {
		meta, rest, ok := strings.Cut(s[len("data:"):], ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		mime = strings.TrimSuffix(meta, ";base64")
		payload = rest
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients use the URL-safe alphabet.
		raw, err = base64.URLEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode base64: %w", err)
		}
	}
	return raw, mime, nil
}
