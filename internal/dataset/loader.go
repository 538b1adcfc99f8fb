// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/metrics"
	"github.com/tomtom215/socialpulse/internal/models"
)

// Loader reads exports from a directory. It holds no state between calls, so
// every call sees the files as they are on disk now.
type Loader struct {
	dir string
}

// NewLoader returns a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the data directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Posts returns the brand's engaged posts from both official and hashtag exports.
func (l *Loader) Posts(ctx context.Context, brandID int) ([]models.Post, error) {
	files, err := FilesFor(brandID)
	if err != nil {
		return nil, err
	}
	return l.collect(ctx, files, engaged)
}

// OfficialPosts returns every row of the brand's official exports, engaged or not.
// Topic and sentiment analysis work from these.
func (l *Loader) OfficialPosts(ctx context.Context, brandID int) ([]models.Post, error) {
	files, err := FilesFor(brandID)
	if err != nil {
		return nil, err
	}
	official := files[:0:0]
	for _, f := range files {
		if f.Source == models.SourceOfficial {
			official = append(official, f)
		}
	}
	return l.collect(ctx, official, nil)
}

// HashtagPosts returns every row of every brand's hashtag exports.
func (l *Loader) HashtagPosts(ctx context.Context) ([]models.Post, error) {
	return l.collect(ctx, HashtagFiles(), nil)
}

func (l *Loader) collect(ctx context.Context, files []File, keep func(*models.Post) bool) ([]models.Post, error) {
	var posts []models.Post
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := l.ReadFile(f)
		if err != nil {
			reason := "read"
			if errors.Is(err, fs.ErrNotExist) {
				reason = "missing"
			}
			metrics.RecordDatasetFileError(reason)
			logging.Ctx(ctx).Warn().Err(err).Str("file", f.Name).Msg("Skipping dataset file")
			continue
		}

		kept := 0
		for _, row := range rows {
			p := toPost(f, row)
			if keep != nil && !keep(&p) {
				continue
			}
			posts = append(posts, p)
			kept++
		}
		metrics.RecordDatasetRows(string(f.Platform), string(f.Source), kept)
	}
	return posts, nil
}

// ReadFile parses one export into rows keyed by header.
func (l *Loader) ReadFile(f File) ([]Row, error) {
	fh, err := os.Open(filepath.Join(l.dir, f.Name))
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	rows, err := readRows(fh)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Name, err)
	}
	return rows, nil
}

// readRows parses CSV with a header line. Ragged records are tolerated: missing
// trailing fields read as empty and surplus fields are ignored.
func readRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read record: %w", err)
		}
		if blank(rec) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// LatestModTime returns the newest modification time of any CSV in the data
// directory. A missing directory yields the zero time.
func (l *Loader) LatestModTime() (time.Time, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read data dir: %w", err)
	}

	var latest time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}
