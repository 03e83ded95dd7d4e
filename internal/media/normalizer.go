package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// Normalizer converts uploaded images into fixed-size JPEG data URIs ready
// to store: square crops for menu items, wide crops for the hero and about
// slots.
type Normalizer struct {
	cfg config.MediaConfig
}

// NewNormalizer builds a normalizer from the media configuration.
func NewNormalizer(cfg config.MediaConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// NormalizeItemImage center-crops the upload to a square and scales it to
// the configured item size, returning a JPEG data URI.
func (n *Normalizer) NormalizeItemImage(data []byte) (string, error) {
	return n.normalize(data, n.cfg.ItemImageSize, n.cfg.ItemImageSize)
}

// NormalizeSlotImage produces the wide crop for a site image slot.
func (n *Normalizer) NormalizeSlotImage(slot enums.ImageSlot, data []byte) (string, error) {
	if !slot.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid image slot %q", slot))
	}
	return n.normalize(data, n.cfg.HeroWidth, n.cfg.HeroHeight)
}

func (n *Normalizer) normalize(data []byte, width, height int) (string, error) {
	if maxBytes := n.cfg.MaxUploadMB * 1024 * 1024; maxBytes > 0 && len(data) > maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("upload exceeds %dMB limit", n.cfg.MaxUploadMB)).
			WithDetails(map[string]any{"size": len(data), "limit": maxBytes})
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decoding image")
	}

	crop := coverCrop(src.Bounds(), width, height)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: n.cfg.JPEGQuality}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding jpeg")
	}

	if n.cfg.MaxOutputBytes > 0 && buf.Len() > n.cfg.MaxOutputBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image is still too large after processing").
			WithDetails(map[string]any{"size": buf.Len(), "limit": n.cfg.MaxOutputBytes})
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// coverCrop picks the centered source rectangle with the target aspect
// ratio, so scaling fills the target without distortion.
func coverCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	srcW, srcH := bounds.Dx(), bounds.Dy()

	cropW := srcW
	cropH := srcW * height / width
	if cropH > srcH {
		cropH = srcH
		cropW = srcH * width / height
	}

	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
