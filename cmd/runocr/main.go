package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/stayparse/internal/common"
	"github.com/joseph-ayodele/stayparse/internal/ingest"
	"github.com/joseph-ayodele/stayparse/internal/ocr"
	"github.com/joseph-ayodele/stayparse/internal/textnorm"
)

func main() {
	var (
		configFile = flag.String("config", "", "optional YAML config file")
		lang       = flag.String("lang", "", "tesseract language override (e.g. eng+hin)")
		psm        = flag.Int("psm", -1, "tesseract page segmentation mode override")
		printText  = flag.Bool("print", false, "print the normalized text to stdout")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall deadline")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "runocr [-lang eng] [-psm 6] [-print] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := common.LoadConfig(*configFile)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *lang != "" {
		cfg.OCR.Lang = *lang
	}
	if *psm >= 0 {
		cfg.OCR.PSM = *psm
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	f, payload, err := ingest.NewFSIngestor("", logger).Load(ctx, path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	extractor := ocr.NewExtractor(ocr.ConfigFrom(cfg.OCR), logger)

	start := time.Now()
	res, err := extractor.Extract(ctx, payload, f.MediaType)
	dur := time.Since(start)
	if err != nil {
		logger.Error("text extraction failed",
			"path", path, "code", common.CodeOf(err), "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}
	text := textnorm.Normalize(res.Text)

	logger.Info("text extraction OK",
		"path", path,
		"media_type", f.MediaType,
		"method", res.Method,
		"pages", res.Pages,
		"used_ocr", res.UsedOCR,
		"chars", len([]rune(text)),
		"confidence", res.Confidence,
		"warnings", res.Warnings,
		"duration_ms", dur.Milliseconds(),
	)
	if *printText {
		fmt.Println(text)
	}
}
