package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
)

// buildPDF writes a one-page PDF whose content stream shows text with
// Helvetica; jpegs are attached as image XObjects.
func buildPDF(text string, jpegs ...[]byte) []byte {
	content := []byte("BT /F1 12 Tf 72 720 Td (" + text + ") Tj ET")

	objects := [][]byte{
		[]byte("<< /Type /Catalog /Pages 2 0 R >>"),
		[]byte("<< /Type /Pages /Kids [3 0 R] /Count 1 >>"),
		nil, // page, filled below
		stream("", content),
		[]byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"),
	}
	xobjects := ""
	for i, j := range jpegs {
		objects = append(objects, stream("/Type /XObject /Subtype /Image /Width 8 /Height 8 /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /DCTDecode", j))
		xobjects += fmt.Sprintf(" /Im%d %d 0 R", i+1, len(objects))
	}
	resources := "/Font << /F1 5 0 R >>"
	if xobjects != "" {
		resources += " /XObject <<" + xobjects + " >>"
	}
	objects[2] = []byte("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << " + resources + " >> /Contents 4 0 R >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(obj)
		buf.WriteString("\nendobj\n")
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func stream(dict string, data []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<< %s /Length %d >>\nstream\n", dict, len(data))
	b.Write(data)
	b.WriteString("\nendstream")
	return b.Bytes()
}

// fakeJPEG is marker-framed filler; only the framing matters to the scanner.
func fakeJPEG(size int, fill byte) []byte {
	b := append([]byte{}, jpegStart...)
	b = append(b, bytes.Repeat([]byte{fill}, size)...)
	return append(b, jpegEnd...)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtract_UnsupportedMediaType(t *testing.T) {
	e := NewExtractor(Config{}, nil, WithRunner(&fakeRunner{}))

	_, err := e.Extract(context.Background(), []byte("hello"), "text/plain")

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedFileType))
	assert.Equal(t, common.CodeUnsupportedFileType, common.CodeOf(err))
}

func TestExtract_Image(t *testing.T) {
	runner := &fakeRunner{out: "Grand Hyatt Goa\nCheck-in 10/04/2026\n"}
	e := NewExtractor(Config{Lang: "eng", PSM: 6}, nil, WithRunner(runner))

	res, err := e.Extract(context.Background(), pngBytes(t), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "Grand Hyatt Goa\nCheck-in 10/04/2026\n", res.Text)
	assert.True(t, res.UsedOCR)
	assert.Equal(t, constants.MethodImageOCR, res.Method)
	assert.Equal(t, constants.IMAGE, res.SourceType)
	assert.Equal(t, 1, res.Pages)
	assert.Greater(t, res.Confidence, float32(0.2))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"tesseract", "stdin", "stdout", "-l", "eng", "--psm", "6"}, runner.calls[0])
}

func TestExtract_ImagePreprocessFallsBackToRaw(t *testing.T) {
	runner := &fakeRunner{out: "some text"}
	e := NewExtractor(Config{Preprocess: true}, nil, WithRunner(runner))
	raw := []byte("definitely not a jpeg")

	res, err := e.Extract(context.Background(), raw, "image/jpg")

	require.NoError(t, err)
	assert.Equal(t, "some text", res.Text)
	require.Len(t, runner.stdins, 1)
	assert.Equal(t, raw, runner.stdins[0])
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "preprocessing skipped")
}

func TestExtract_ImagePreprocessEncodesPNG(t *testing.T) {
	runner := &fakeRunner{out: "ok"}
	e := NewExtractor(Config{Preprocess: true}, nil, WithRunner(runner))

	_, err := e.Extract(context.Background(), pngBytes(t), constants.MediaTypePNG)

	require.NoError(t, err)
	require.Len(t, runner.stdins, 1)
	_, format, err := image.Decode(bytes.NewReader(runner.stdins[0]))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestExtract_ImageOCRFailureIsSwallowed(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), errOut: "Error opening data file"}
	e := NewExtractor(Config{}, nil, WithRunner(runner))

	res, err := e.Extract(context.Background(), pngBytes(t), constants.MediaTypePNG)

	require.NoError(t, err)
	assert.Empty(t, res.Text)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Error opening data file")
	assert.Equal(t, float32(0), res.Confidence)
}

func TestExtract_CorruptPDF(t *testing.T) {
	e := NewExtractor(Config{}, nil, WithRunner(&fakeRunner{}))

	_, err := e.Extract(context.Background(), []byte("%PDF-1.4\nthis is not really a pdf"), constants.MediaTypePDF)

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnreadable))
	assert.Equal(t, common.CodeAcquisitionFailed, common.CodeOf(err))
}

func TestExtract_NativePDFText(t *testing.T) {
	runner := &fakeRunner{out: "should not be used"}
	e := NewExtractor(Config{}, nil, WithRunner(runner))
	text := "HOTEL CONTRACT Grand Hyatt Goa Check-in 10 April 2026 Check-out 13 April 2026"

	res, err := e.Extract(context.Background(), buildPDF(text), constants.MediaTypePDF)

	require.NoError(t, err)
	assert.Contains(t, res.Text, "Grand Hyatt Goa")
	assert.False(t, res.UsedOCR)
	assert.Equal(t, constants.MethodPDFText, res.Method)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 0, runner.callCount())
}

func TestExtract_ScannedPDFFallsBackToEmbeddedImages(t *testing.T) {
	runner := &fakeRunner{out: "Taj Exotica Resort & Spa\nCheck-in 10/04/2026\n"}
	e := NewExtractor(Config{Concurrency: 2}, nil, WithRunner(runner))
	payload := buildPDF("x", fakeJPEG(12*1024, 0x41), fakeJPEG(100, 0x42), fakeJPEG(11*1024, 0x43))

	res, err := e.Extract(context.Background(), payload, constants.MediaTypePDF)

	require.NoError(t, err)
	assert.True(t, res.UsedOCR)
	assert.Equal(t, constants.MethodPDFOCR, res.Method)
	// the 100 byte image is below the size floor
	assert.Equal(t, 2, runner.callCount())
	assert.Contains(t, res.Text, "Taj Exotica Resort & Spa")
}

func TestEmbeddedJPEGs(t *testing.T) {
	big := fakeJPEG(11*1024, 0x41)
	small := fakeJPEG(64, 0x42)

	t.Run("size floor and order", func(t *testing.T) {
		payload := bytes.Join([][]byte{[]byte("head"), small, []byte("mid"), big, []byte("tail")}, nil)
		got := embeddedJPEGs(payload, 10*1024, 10)
		require.Len(t, got, 1)
		assert.Equal(t, big, got[0])
	})

	t.Run("cap", func(t *testing.T) {
		payload := bytes.Repeat(big, 5)
		got := embeddedJPEGs(payload, 10*1024, 3)
		assert.Len(t, got, 3)
	})

	t.Run("thumbnail EOI inside stream", func(t *testing.T) {
		img := append(append([]byte{}, jpegStart...), bytes.Repeat([]byte{0x41}, 6*1024)...)
		img = append(img, jpegEnd...) // embedded thumbnail end
		img = append(img, bytes.Repeat([]byte{0x42}, 6*1024)...)
		img = append(img, jpegEnd...)
		payload := append(append([]byte("stream\n"), img...), []byte("\nendstream")...)

		got := embeddedJPEGs(payload, 10*1024, 10)
		require.Len(t, got, 1)
		assert.Equal(t, img, got[0])
	})

	t.Run("no markers", func(t *testing.T) {
		assert.Empty(t, embeddedJPEGs([]byte("plain text"), 0, 10))
	})
}

func TestHeuristicConfidence(t *testing.T) {
	assert.Equal(t, float32(0), heuristicConfidence("  "))
	low := heuristicConfidence("lorem ipsum")
	high := heuristicConfidence("Hotel contract, check-in 10/04/2026, total ₹4,00,000.00")
	assert.Less(t, low, high)
	assert.LessOrEqual(t, high, float32(1))
}

func TestMatchedSignals(t *testing.T) {
	assert.Equal(t, []string{"date", "domain"}, matchedSignals("RSVP by 12 Dec"))
	assert.Empty(t, matchedSignals("lorem ipsum"))
}
