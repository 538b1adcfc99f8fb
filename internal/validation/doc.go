// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

// Package validation wraps a singleton go-playground validator and converts
// its failures into the API error envelope.
//
// Field names in errors use the json tag, so clients see "brandName" rather
// than "BrandName". A custom "platform" tag accepts the enumerated platforms
// plus "all".
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.ToAPIError())
//	}
package validation
