// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/socialpulse/internal/cache"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/models"
)

// queryFunc computes a dashboard payload.
type queryFunc func(ctx context.Context) (interface{}, error)

// DataVersion reports when the post exports last changed.
// (*dataset.Loader).LatestModTime satisfies it.
type DataVersion func(ctx context.Context) (time.Time, error)

// versionedKey ties a cache entry to the exports it was computed from, so a
// rewritten CSV misses instead of serving the old result.
type versionedKey struct {
	Params  interface{} `json:"p"`
	Version int64       `json:"v"`
}

// executeCached runs the cache-first flow shared by the chart handlers: look
// up name+params+data version, compute on a miss, store, respond. When the
// data version cannot be read the result is computed and not stored.
func (h *Handler) executeCached(w http.ResponseWriter, r *http.Request, name string, params interface{}, fn queryFunc) {
	start := time.Now()

	key, cacheable := "", h.cache != nil
	if cacheable {
		version, err := h.currentVersion(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("query", name).Msg("Data version unavailable, bypassing cache")
			cacheable = false
		}
		key = cache.GenerateKey(name, versionedKey{Params: params, Version: version.UnixNano()})
	}

	if cacheable {
		if cached, found := h.cache.Get(key); found {
			respondData(w, r, cached, start, true)
			return
		}
	}

	data, err := fn(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to compute "+name, err)
		return
	}
	if cacheable {
		h.cache.Set(key, data)
	}
	respondData(w, r, data, start, false)
}

// executeFresh computes the payload on every request and forbids any cache
// from keeping it. Summaries and topics always reflect the current exports.
func (h *Handler) executeFresh(w http.ResponseWriter, r *http.Request, name string, fn queryFunc) {
	start := time.Now()
	data, err := fn(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to compute "+name, err)
		return
	}
	w.Header().Set("Cache-Control", "no-cache, no-store")
	respondData(w, r, data, start, false)
}

func (h *Handler) currentVersion(ctx context.Context) (time.Time, error) {
	if h.dataVersion == nil {
		return time.Time{}, nil
	}
	return h.dataVersion(ctx)
}
