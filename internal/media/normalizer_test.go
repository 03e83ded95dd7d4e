package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMediaConfig() config.MediaConfig {
	return config.MediaConfig{
		MaxUploadMB:    8,
		ItemImageSize:  600,
		HeroWidth:      1920,
		HeroHeight:     1080,
		JPEGQuality:    85,
		MaxOutputBytes: 1048576,
	}
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestNormalizeItemImageSquaresWideUpload(t *testing.T) {
	n := NewNormalizer(testMediaConfig())

	uri, err := n.NormalizeItemImage(pngBytes(t, 1200, 800))
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestNormalizeItemImageSquaresTallUpload(t *testing.T) {
	n := NewNormalizer(testMediaConfig())

	uri, err := n.NormalizeItemImage(pngBytes(t, 300, 900))
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestNormalizeSlotImageUsesWideFrame(t *testing.T) {
	n := NewNormalizer(testMediaConfig())

	uri, err := n.NormalizeSlotImage(enums.ImageSlotHero, pngBytes(t, 2500, 2500))
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, 1080, img.Bounds().Dy())
}

func TestNormalizeSlotImageRejectsUnknownSlot(t *testing.T) {
	n := NewNormalizer(testMediaConfig())

	_, err := n.NormalizeSlotImage(enums.ImageSlot("banner"), pngBytes(t, 100, 100))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestNormalizeRejectsOversizedUpload(t *testing.T) {
	cfg := testMediaConfig()
	cfg.MaxUploadMB = 1
	n := NewNormalizer(cfg)

	_, err := n.NormalizeItemImage(make([]byte, 2*1024*1024))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	n := NewNormalizer(testMediaConfig())

	_, err := n.NormalizeItemImage([]byte("not an image"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCoverCropCentersOnLargerAxis(t *testing.T) {
	crop := coverCrop(image.Rect(0, 0, 1000, 400), 600, 600)
	assert.Equal(t, image.Rect(300, 0, 700, 400), crop)

	crop = coverCrop(image.Rect(0, 0, 400, 1000), 600, 600)
	assert.Equal(t, image.Rect(0, 300, 400, 700), crop)
}
