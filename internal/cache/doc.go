// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package cache provides a generic, thread-safe LRU cache with optional TTL.

The recommendation engine uses it to hold fitted models keyed by dataset
fingerprint and hyperparameters:

	models := cache.NewLRU[recommend.Model](8, 0)
	models.Add(key, model)
	if m, ok := models.Get(key); ok {
	    // reuse fitted model
	}

Entries never expire when the TTL is zero; callers invalidate explicitly
with Remove, RemoveFunc or Clear.
*/
package cache
