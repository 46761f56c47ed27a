package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
	"github.com/joseph-ayodele/stayparse/internal/textnorm"
)

// Defaults applied by NewExtractor when the matching Config field is zero.
const (
	DefaultMinNativeChars = 50
	DefaultMinImageBytes  = 10 * 1024
	DefaultMaxImages      = 10
	DefaultConcurrency    = 2
	DefaultTimeout        = 90 * time.Second
)

type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Lang        string // default "eng"
	TessdataDir string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	Preprocess bool // grayscale + contrast + sharpen before OCR

	MinNativeChars int // below this a PDF is treated as scanned
	MinImageBytes  int // embedded JPEGs at or under this size are ignored
	MaxImages      int // embedded JPEGs OCR'd per PDF
	Concurrency    int
	Timeout        time.Duration
}

// ConfigFrom maps the application OCR settings onto extractor settings.
func ConfigFrom(c common.OCRConfig) Config {
	return Config{
		Tesseract:      c.Tesseract,
		Lang:           c.Lang,
		TessdataDir:    c.TessdataDir,
		PSM:            c.PSM,
		OEM:            c.OEM,
		Preprocess:     c.Preprocess,
		MinNativeChars: c.MinNativeChars,
		MinImageBytes:  c.MinImageBytes,
		MaxImages:      c.MaxImages,
		Concurrency:    c.Concurrency,
		Timeout:        c.Timeout,
	}
}

type ExtractionResult struct {
	Text       string
	UsedOCR    bool
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // constants.MethodPDFText | MethodPDFOCR | MethodImageOCR
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithRunner replaces the process runner (tests use a fake tesseract).
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.MinNativeChars <= 0 {
		cfg.MinNativeChars = DefaultMinNativeChars
	}
	if cfg.MinImageBytes <= 0 {
		cfg.MinImageBytes = DefaultMinImageBytes
	}
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = DefaultMaxImages
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	e := &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract acquires text from a raw payload. PDFs use the native text layer and
// fall back to OCR of embedded page images when that layer is (nearly) empty;
// images go straight to OCR. OCR problems never fail the call: they surface as
// warnings with whatever text was recovered.
func (e *Extractor) Extract(ctx context.Context, payload []byte, mediaType string) (ExtractionResult, error) {
	start := time.Now()
	mt := constants.NormalizeMediaType(mediaType)
	e.logger.Debug("ocr.extract.start", "media_type", mt, "bytes", len(payload))

	var (
		res ExtractionResult
		err error
	)
	switch constants.MapMediaTypeToFormat(mt, true) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, payload)
	case constants.IMAGE:
		res = e.extractImage(ctx, payload, mt)
	default:
		e.logger.Error("ocr.extract.unsupported", "media_type", mt)
		return ExtractionResult{}, common.NewAppError(common.CodeUnsupportedFileType,
			fmt.Sprintf("media type %q", mediaType), common.ErrUnsupportedFileType)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	res.Language = e.cfg.Lang
	res.Confidence = heuristicConfidence(res.Text)
	e.logger.Debug("ocr.extract.done",
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"used_ocr", res.UsedOCR,
		"confidence", res.Confidence,
		"signals", matchedSignals(res.Text),
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) extractPDF(ctx context.Context, payload []byte) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF, Method: constants.MethodPDFText}

	text, pages, warns, err := nativeText(payload)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		e.logger.Error("ocr.pdf.unreadable", "error", err)
		return res, common.NewAppError(common.CodeAcquisitionFailed, "read pdf text layer", err)
	}
	res.Text, res.Pages = text, pages

	n := len([]rune(textnorm.Normalize(text)))
	if n >= e.cfg.MinNativeChars {
		return res, nil
	}
	e.logger.Debug("ocr.pdf.scanned", "native_chars", n, "threshold", e.cfg.MinNativeChars)

	ocrText, images, ocrWarns := e.ocrEmbedded(ctx, payload)
	res.Warnings = append(res.Warnings, ocrWarns...)
	if ocrText == "" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("scanned pdf: no text recovered from %d embedded image(s)", images))
		return res, nil
	}
	res.Text = ocrText
	res.UsedOCR = true
	res.Method = constants.MethodPDFOCR
	if res.Pages == 0 {
		res.Pages = images
	}
	return res, nil
}

func (e *Extractor) extractImage(ctx context.Context, payload []byte, mediaType string) ExtractionResult {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	txt, warns := e.ocrImage(ctx, payload, mediaType)
	return ExtractionResult{
		Text:       txt,
		UsedOCR:    true,
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     constants.MethodImageOCR,
		Warnings:   warns,
	}
}
