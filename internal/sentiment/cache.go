// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package sentiment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/socialpulse/internal/models"
)

// ErrCacheMissing is returned by Load when no cache file exists yet.
var ErrCacheMissing = errors.New("sentiment cache not found")

// cacheFile is the on-disk layout.
type cacheFile struct {
	ComputedAt time.Time                `json:"computedAt"`
	Records    []models.SentimentRecord `json:"records"`
}

// Cache stores sentiment records as a JSON file.
type Cache struct {
	path string
}

// NewCache returns a cache backed by the file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Load reads every cached record.
func (c *Cache) Load() ([]models.SentimentRecord, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheMissing
	}
	if err != nil {
		return nil, fmt.Errorf("read sentiment cache: %w", err)
	}

	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode sentiment cache: %w", err)
	}
	return f.Records, nil
}

// Save replaces the cache contents. The file is written beside the target and
// renamed into place so readers never see a partial file.
func (c *Cache) Save(records []models.SentimentRecord, computedAt time.Time) error {
	if records == nil {
		records = []models.SentimentRecord{}
	}
	data, err := json.Marshal(cacheFile{ComputedAt: computedAt.UTC(), Records: records})
	if err != nil {
		return fmt.Errorf("encode sentiment cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sentiment-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace sentiment cache: %w", err)
	}
	return nil
}

// Outdated reports whether the cache is missing or older than dataModTime,
// the newest modification time among the source exports.
func (c *Cache) Outdated(dataModTime time.Time) bool {
	info, err := os.Stat(c.path)
	if err != nil {
		return true
	}
	return dataModTime.After(info.ModTime())
}
