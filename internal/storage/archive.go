// Package storage archives uploaded price lists on the local filesystem so
// an import can be audited or replayed later.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Metadata describes one archived price list.
type Metadata struct {
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Size         int64     `json:"size"`
	Checksum     string    `json:"checksum"`
	RowsUpdated  int       `json:"rowsUpdated"`
	RowErrors    int       `json:"rowErrors"`
}

// PriceListArchive stores uploaded price lists under a base directory, one
// file per upload plus a .meta sidecar.
type PriceListArchive struct {
	basePath string
}

// NewPriceListArchive creates the archive, ensuring the base directory
// exists.
func NewPriceListArchive(basePath string) (*PriceListArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &PriceListArchive{basePath: basePath}, nil
}

// Save stores one uploaded price list and returns its archive key. The key
// embeds the upload time and a checksum prefix so repeated uploads of the
// same file remain distinguishable.
func (a *PriceListArchive) Save(ctx context.Context, originalName string, content []byte, meta Metadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	now := time.Now().UTC()
	key := fmt.Sprintf("%s_%s_%s", now.Format("20060102T150405"), checksum[:8], sanitizeName(originalName))

	fullPath := filepath.Join(a.basePath, key)
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive file %s: %w", fullPath, err)
	}

	meta.OriginalName = originalName
	meta.UploadedAt = now
	meta.Size = int64(len(content))
	meta.Checksum = checksum

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(fullPath+".meta", metaBytes, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return key, nil
}

// Get returns the content of an archived price list.
func (a *PriceListArchive) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return nil, fmt.Errorf("invalid archive key: %s", key)
	}

	content, err := os.ReadFile(filepath.Join(a.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found: %s", key)
		}
		return nil, fmt.Errorf("failed to read archive %s: %w", key, err)
	}
	return content, nil
}

// Meta returns the metadata of an archived price list.
func (a *PriceListArchive) Meta(ctx context.Context, key string) (*Metadata, error) {
	content, err := a.Get(ctx, key+".meta")
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(content, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for %s: %w", key, err)
	}
	return &meta, nil
}

// List returns archive keys, newest first.
func (a *PriceListArchive) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(a.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".meta") {
			continue
		}
		keys = append(keys, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
