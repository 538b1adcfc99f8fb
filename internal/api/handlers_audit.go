// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/models"
)

const defaultAuditLimit = 50

// AuditRequest filters the audit trail.
type AuditRequest struct {
	Types   []string `validate:"dive,min=1,max=64"`
	Outcome string   `validate:"omitempty,oneof=success failure"`
	Actor   string   `validate:"omitempty,max=100"`
	Limit   int      `validate:"min=1,max=500"`
}

// AuditEvents lists recent audit events, newest first. Administrators only.
func (h *Handler) AuditEvents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.audit == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Audit logging is disabled", nil)
		return
	}

	q := r.URL.Query()
	req := AuditRequest{
		Outcome: q.Get("outcome"),
		Actor:   q.Get("actor"),
		Limit:   getIntParam(r, "limit", defaultAuditLimit),
	}
	if types := q.Get("type"); types != "" {
		for _, t := range strings.Split(types, ",") {
			req.Types = append(req.Types, strings.TrimSpace(t))
		}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	filter := audit.QueryFilter{
		Outcome:   audit.Outcome(req.Outcome),
		ActorName: req.Actor,
		Limit:     req.Limit,
	}
	for _, t := range req.Types {
		filter.Types = append(filter.Types, audit.EventType(t))
	}

	events, err := h.audit.Query(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to query audit events", err)
		return
	}
	respondData(w, r, events, start, false)
}
