package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	DefaultKind constants.DocumentKind
	logger      *slog.Logger
}

func NewFSIngestor(defaultKind constants.DocumentKind, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultKind == "" {
		defaultKind = constants.KindContract
	}
	return &FSIngestor{DefaultKind: defaultKind, logger: logger}
}

// MediaTypeOf sniffs the payload. Content wins over the extension; the
// extension is only used for empty files, which sniff as text.
func MediaTypeOf(path string, payload []byte) string {
	if len(payload) == 0 {
		return constants.MediaTypeForExt(filepath.Ext(path))
	}
	return constants.NormalizeMediaType(mimetype.Detect(payload).String())
}

func (i *FSIngestor) Load(ctx context.Context, path string) (File, []byte, error) {
	if err := ctx.Err(); err != nil {
		return File{}, nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, nil, common.WrapError(err, "abs path")
	}
	payload, err := os.ReadFile(abs)
	if err != nil {
		i.logger.Error("ingest.read.failed", "path", abs, "error", err)
		return File{}, nil, common.NewAppError(common.CodeAcquisitionFailed, "read file", err)
	}
	sum := sha256.Sum256(payload)
	f := File{
		ID:        uuid.New(),
		Path:      abs,
		MediaType: MediaTypeOf(abs, payload),
		Kind:      GuessKind(abs, i.DefaultKind),
		Size:      int64(len(payload)),
		HashHex:   hex.EncodeToString(sum[:]),
	}
	i.logger.Debug("ingest.load.ok", "path", abs, "media_type", f.MediaType, "bytes", f.Size, "kind", f.Kind)
	return f, payload, nil
}

// ScanDirectory walks root, skips hidden entries if requested, and returns
// every file with an accepted extension. Files are not read here; their media
// type is sniffed from the header only.
func (i *FSIngestor) ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]File, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, common.NewAppError(common.CodeConfig, "root path is required", common.ErrInvalidInput)
	}

	var files []File
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			files = append(files, File{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			stats.Skipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			stats.Skipped++
			return nil
		}
		stats.Matched++

		f := File{ID: uuid.New(), Path: path, Kind: GuessKind(path, i.DefaultKind)}
		if info, err := d.Info(); err == nil {
			f.Size = info.Size()
		}
		switch mt, err := mimetype.DetectFile(path); {
		case err != nil:
			f.Err = err.Error()
			stats.Failed++
		case f.Size == 0:
			f.MediaType = constants.MediaTypeForExt(filepath.Ext(path))
		default:
			f.MediaType = constants.NormalizeMediaType(mt.String())
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return files, stats, err
		}
		return files, stats, common.WrapError(err, "walk")
	}
	i.logger.Info("ingest.scan.ok", "root", root, "scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	return files, stats, nil
}
