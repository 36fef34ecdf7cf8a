// Package ingest stages uploaded payloads to disk for processing. Every
// staged file must be cleaned up on every exit path so repeated uploads do
// not leak disk space.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mbzesq/npl-vision-2/constants"
)

// StagedFile is an uploaded payload written to a temp file, content-hashed
// for logging and dedupe.
type StagedFile struct {
	Path    string
	Ext     string
	Size    int64
	HashHex string

	logger *slog.Logger
}

// Stage copies the payload to a temp file. The caller owns the returned file
// and must defer Cleanup.
func Stage(r io.Reader, ext string, logger *slog.Logger) (*StagedFile, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ext = constants.NormalizeExt(ext)

	f, err := os.CreateTemp("", "npl-upload-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	h := sha256.New()
	size, err := io.Copy(f, io.TeeReader(r, h))
	cerr := f.Close()
	if err != nil || cerr != nil {
		if rmErr := os.Remove(f.Name()); rmErr != nil {
			logger.Warn("ingest.stage.cleanup_failed", "path", f.Name(), "error", rmErr)
		}
		if err == nil {
			err = cerr
		}
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	staged := &StagedFile{
		Path:    f.Name(),
		Ext:     ext,
		Size:    size,
		HashHex: hex.EncodeToString(h.Sum(nil)),
		logger:  logger,
	}
	logger.Info("ingest.stage.ok", "path", staged.Path, "bytes", size, "sha256", staged.HashHex)
	return staged, nil
}

// Cleanup removes the staged file. Safe to call more than once.
func (s *StagedFile) Cleanup() {
	if s.Path == "" {
		return
	}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("ingest.stage.cleanup_failed", "path", s.Path, "error", err)
	}
	s.Path = ""
}
