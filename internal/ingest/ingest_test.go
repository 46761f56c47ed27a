package ingest_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/ingest"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "leela-contract.pdf"), []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
	write(t, filepath.Join(root, "sub", "wedding-invite.png"), pngBytes(t))
	write(t, filepath.Join(root, "notes.txt"), []byte("not a document"))
	write(t, filepath.Join(root, ".hidden.pdf"), []byte("%PDF-1.4\n"))
	write(t, filepath.Join(root, ".cache", "old.pdf"), []byte("%PDF-1.4\n"))

	ing := ingest.NewFSIngestor(constants.KindContract, quiet)
	files, stats, err := ing.ScanDirectory(context.Background(), root, true)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byName := map[string]ingest.File{}
	for _, f := range files {
		assert.Empty(t, f.Err)
		assert.NotEqual(t, uuid.Nil, f.ID)
		byName[filepath.Base(f.Path)] = f
	}
	assert.Equal(t, constants.MediaTypePDF, byName["leela-contract.pdf"].MediaType)
	assert.Equal(t, constants.KindContract, byName["leela-contract.pdf"].Kind)
	assert.Equal(t, constants.MediaTypePNG, byName["wedding-invite.png"].MediaType)
	assert.Equal(t, constants.KindInvite, byName["wedding-invite.png"].Kind)
	assert.Equal(t, uint32(2), stats.Matched)
	assert.Equal(t, uint32(0), stats.Failed)
}

func TestScanDirectory_RequiresRoot(t *testing.T) {
	_, _, err := ingest.NewFSIngestor("", quiet).ScanDirectory(context.Background(), "  ", true)
	assert.Error(t, err)
}

func TestLoad_SniffsContentOverExtension(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "scan.pdf")
	write(t, path, pngBytes(t))

	f, payload, err := ingest.NewFSIngestor(constants.KindContract, quiet).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, constants.MediaTypePNG, f.MediaType)
	assert.Len(t, payload, int(f.Size))
	assert.Len(t, f.HashHex, 64)
}

func TestLoad_Missing(t *testing.T) {
	_, _, err := ingest.NewFSIngestor("", quiet).Load(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestGuessKind(t *testing.T) {
	tests := []struct {
		path string
		def  constants.DocumentKind
		want constants.DocumentKind
	}{
		{"/in/Invitation_Final.jpg", constants.KindContract, constants.KindInvite},
		{"/in/save-the-date.webp", constants.KindContract, constants.KindInvite},
		{"/in/hotel_contract.pdf", constants.KindInvite, constants.KindContract},
		{"/in/scan0001.pdf", constants.KindInvite, constants.KindInvite},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, ingest.GuessKind(tt.path, tt.def))
		})
	}
}

func TestWatch_EmitsNewFiles(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "existing.pdf"), []byte("%PDF-1.4\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := ingest.Watch(ctx, ingest.WatchConfig{
		Roots:       []string{root},
		SkipHidden:  true,
		InitialScan: true,
		Debounce:    20 * time.Millisecond,
	}, quiet)
	require.NoError(t, err)

	next := func() string {
		select {
		case p := <-events:
			return p
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for watch event")
			return ""
		}
	}
	assert.Equal(t, "existing.pdf", filepath.Base(next()))

	write(t, filepath.Join(root, "notes.txt"), []byte("ignored"))
	write(t, filepath.Join(root, "new.png"), pngBytes(t))
	assert.Equal(t, "new.png", filepath.Base(next()))

	cancel()
	for range events {
	}
}

func TestWatch_NoRoots(t *testing.T) {
	_, _, err := ingest.Watch(context.Background(), ingest.WatchConfig{}, quiet)
	assert.Error(t, err)
}
