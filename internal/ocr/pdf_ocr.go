package ocr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/stayparse/constants"
)

var (
	jpegStart = []byte{0xFF, 0xD8, 0xFF}
	jpegEnd   = []byte{0xFF, 0xD9}
	endStream = []byte("endstream")
)

// minOCRChars is the shortest per-image OCR result worth keeping.
const minOCRChars = 10

// embeddedJPEGs returns the DCT-encoded images stored verbatim in a PDF, in
// document order. An image ends at the last EOI marker before its stream's
// "endstream" keyword, or at the first EOI when no keyword follows.
func embeddedJPEGs(payload []byte, minBytes, max int) [][]byte {
	var out [][]byte
	for off := 0; off < len(payload); {
		if max > 0 && len(out) >= max {
			break
		}
		i := bytes.Index(payload[off:], jpegStart)
		if i < 0 {
			break
		}
		start := off + i
		body := payload[start+len(jpegStart):]

		end := -1
		if k := bytes.Index(body, endStream); k >= 0 {
			if j := bytes.LastIndex(body[:k], jpegEnd); j >= 0 {
				end = start + len(jpegStart) + j + len(jpegEnd)
			}
		}
		if end < 0 {
			j := bytes.Index(body, jpegEnd)
			if j < 0 {
				break
			}
			end = start + len(jpegStart) + j + len(jpegEnd)
		}

		if end-start > minBytes {
			out = append(out, payload[start:end])
		}
		off = end
	}
	return out
}

// ocrEmbedded OCRs the embedded page images of a scanned PDF on a bounded
// group under the configured deadline. Per-image failures become warnings.
func (e *Extractor) ocrEmbedded(ctx context.Context, payload []byte) (string, int, []string) {
	imgs := embeddedJPEGs(payload, e.cfg.MinImageBytes, e.cfg.MaxImages)
	if len(imgs) == 0 {
		e.logger.Debug("ocr.embedded.none")
		return "", 0, []string{"scanned pdf: no embedded images large enough to OCR"}
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	texts := make([]string, len(imgs))
	warns := make([][]string, len(imgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, img := range imgs {
		g.Go(func() error {
			txt, w := e.ocrImage(gctx, img, constants.MediaTypeJPEG)
			texts[i] = txt
			for _, msg := range w {
				warns[i] = append(warns[i], fmt.Sprintf("embedded image %d: %s", i+1, msg))
			}
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	var allWarns []string
	for i := range imgs {
		allWarns = append(allWarns, warns[i]...)
		txt := strings.TrimSpace(texts[i])
		if len(txt) <= minOCRChars {
			e.logger.Debug("ocr.embedded.skip", "image", i+1, "chars", len(txt))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(txt)
	}
	if ctx.Err() != nil {
		allWarns = append(allWarns, "embedded image OCR stopped: "+ctx.Err().Error())
	}
	return b.String(), len(imgs), allWarns
}
