package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"

	"github.com/joseph-ayodele/stayparse/constants"
)

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-=|]{3,}\s*$`)

// ocrImage runs tesseract on one image. Preprocessing failure falls back to
// the raw bytes; engine failure yields empty text plus a warning.
func (e *Extractor) ocrImage(ctx context.Context, data []byte, mediaType string) (string, []string) {
	var warns []string
	input := data

	isWebP := constants.NormalizeMediaType(mediaType) == constants.MediaTypeWebP
	if e.cfg.Preprocess || isWebP {
		prepared, err := prepareImage(data, mediaType, e.cfg.Preprocess)
		if err != nil {
			e.logger.Warn("ocr.preprocess.failed", "media_type", mediaType, "error", err)
			warns = append(warns, "image preprocessing skipped: "+err.Error())
		} else {
			input = prepared
		}
	}

	txt, err := e.tesseract(ctx, input)
	if err != nil {
		e.logger.Warn("ocr.tesseract.failed", "error", err)
		return "", append(warns, err.Error())
	}
	return txt, warns
}

func (e *Extractor) tesseract(ctx context.Context, img []byte) (string, error) {
	// tesseract stdin stdout -l <lang>
	args := []string{"stdin", "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, img, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, truncate(msg, 512))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}

	// minor cleanup of obvious line noise
	return reBoxNoise.ReplaceAllString(string(out), ""), nil
}

// prepareImage decodes an image and re-encodes it as PNG, optionally after
// grayscale, contrast and sharpen passes that help tesseract on phone photos.
func prepareImage(data []byte, mediaType string, enhance bool) ([]byte, error) {
	img, err := decodeImage(data, mediaType)
	if err != nil {
		return nil, err
	}
	if enhance {
		g := imaging.Grayscale(img)
		g = imaging.AdjustContrast(g, 20)
		img = imaging.Sharpen(g, 1.0)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(data []byte, mediaType string) (image.Image, error) {
	if constants.NormalizeMediaType(mediaType) == constants.MediaTypeWebP {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode webp: %w", err)
		}
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
