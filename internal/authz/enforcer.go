// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package authz

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/tomtom215/socialpulse/internal/logging"
)

var (
	//go:embed model.conf
	modelConf string

	//go:embed policy.csv
	defaultPolicy string
)

// Actions derived from HTTP methods.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

// Enforcer answers role/path/action questions against the loaded policy.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads the embedded model with the policy at policyPath, or the
// embedded default policy when policyPath is empty or missing.
func NewEnforcer(policyPath string) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	source, text, err := readPolicy(policyPath)
	if err != nil {
		return nil, err
	}
	rules, groups, err := parsePolicy(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse %s policy: %w", source, err)
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("load %s policy: %w", source, err)
		}
	}
	if len(groups) > 0 {
		if _, err := e.AddGroupingPolicies(groups); err != nil {
			return nil, fmt.Errorf("load %s role grouping: %w", source, err)
		}
	}

	logging.Info().Str("source", source).Int("rules", len(rules)).Int("groups", len(groups)).
		Msg("Authorization policy loaded")
	return &Enforcer{enforcer: e}, nil
}

func readPolicy(path string) (source, text string, err error) {
	if path == "" {
		return "embedded", defaultPolicy, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Str("path", path).Msg("Policy file not found, using embedded policy")
		return "embedded", defaultPolicy, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("read policy file: %w", err)
	}
	return path, string(data), nil
}

// parsePolicy reads casbin CSV lines: "p, role, path, action" and
// "g, role, parent". Comments start with '#'.
func parsePolicy(r io.Reader) (rules, groups [][]string, err error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rules, groups, nil
		}
		if err != nil {
			return nil, nil, err
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		switch {
		case rec[0] == "p" && len(rec) == 4:
			rules = append(rules, rec[1:])
		case rec[0] == "g" && len(rec) == 3:
			groups = append(groups, rec[1:])
		default:
			line, _ := cr.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: unexpected rule %q", line, strings.Join(rec, ", "))
		}
	}
}

// Enforce reports whether role may perform action on object. An empty role
// is always denied.
func (e *Enforcer) Enforce(role, object, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("enforce %s %s %s: %w", role, object, action, err)
	}
	return allowed, nil
}

// Policy returns the loaded permission rules.
func (e *Enforcer) Policy() [][]string {
	policy, err := e.enforcer.GetPolicy()
	if err != nil {
		return nil
	}
	return policy
}
