package ingest

import (
	"context"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/stayparse/constants"
)

// File is one discovered input document.
type File struct {
	ID        uuid.UUID
	Path      string
	MediaType string
	Kind      constants.DocumentKind
	Size      int64
	HashHex   string
	Err       string
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// Ingestor is the behavior the batch runner depends on.
type Ingestor interface {
	// Load reads one file and sniffs its media type.
	Load(ctx context.Context, path string) (File, []byte, error)
	// ScanDirectory lists all matching files under root in walk order.
	ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]File, DirStats, error)
}
