package ocr

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/stayparse/internal/common"
)

// nativeText reads the PDF text layer. A failed whole-document read is retried
// once page by page, skipping pages that fail; only when both passes fail is
// the document reported unreadable.
func nativeText(payload []byte) (text string, pages int, warnings []string, err error) {
	text, pages, err = plainText(payload)
	if err == nil {
		return text, pages, nil, nil
	}
	warnings = append(warnings, "pdf text layer: "+err.Error()+"; retrying page by page")

	text, pages, skipped, err2 := pageByPage(payload)
	if err2 != nil {
		return "", 0, warnings, fmt.Errorf("%w: %v", common.ErrUnreadable, err2)
	}
	if skipped > 0 {
		warnings = append(warnings, fmt.Sprintf("pdf text layer: skipped %d of %d pages", skipped, pages))
	}
	return text, pages, warnings, nil
}

func plainText(payload []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", 0, err
	}
	pages = r.NumPage()
	rd, err := r.GetPlainText()
	if err != nil {
		return "", pages, err
	}
	b, err := io.ReadAll(rd)
	if err != nil {
		return "", pages, err
	}
	return string(b), pages, nil
}

func pageByPage(payload []byte) (text string, pages, skipped int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", 0, 0, err
	}
	pages = r.NumPage()

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		txt, ok := pageText(r, i)
		if !ok {
			skipped++
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
	}
	if pages > 0 && skipped == pages {
		return "", pages, skipped, fmt.Errorf("no readable pages")
	}
	return b.String(), pages, skipped, nil
}

func pageText(r *pdf.Reader, i int) (txt string, ok bool) {
	defer func() {
		if recover() != nil {
			txt, ok = "", false
		}
	}()
	p := r.Page(i)
	if p.V.IsNull() {
		return "", false
	}
	txt, err := p.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return txt, true
}
