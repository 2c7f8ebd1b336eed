// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

// Package models defines the JSON envelope and payload types of the HTTP API.
//
// Every response is an APIResponse with status "success" or "error".
// Recommendation and insight payloads reuse the recommend and insights
// types directly; this package holds only the API-specific shapes.
package models
