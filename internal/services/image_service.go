package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"souq_backend/internal/logger"
	"souq_backend/internal/storage"
)

// ImageService materializes stored image paths into self-contained data
// URIs for JSON transport. It runs on every listing read; there is no
// cross-request cache.
type ImageService interface {
	// Materialize expands each stored path that still resolves to a file
	// into a data URI. Paths whose file has disappeared are dropped
	// silently; the relative order of the survivors is preserved.
	Materialize(ctx context.Context, paths []string) []string
}

type imageService struct {
	storage storage.Storage
}

func NewImageService(storage storage.Storage) ImageService {
	return &imageService{storage: storage}
}

func (s *imageService) Materialize(ctx context.Context, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		exists, err := s.storage.Exists(ctx, path)
		if err != nil || !exists {
			continue
		}

		data, err := s.storage.ReadAll(ctx, path)
		if err != nil {
			logger.CtxWarn(ctx, "skipping unreadable image", "path", path, "error", err)
			continue
		}

		out = append(out, DataURI(path, data))
	}
	return out
}

// DataURI assembles the inline representation: a MIME-ish tag derived from
// the file extension plus the base64-encoded bytes.
func DataURI(path string, data []byte) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return fmt.Sprintf("data:image/%s;base64,%s", ext, base64.StdEncoding.EncodeToString(data))
}
