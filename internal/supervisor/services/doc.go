// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package services provides suture.Service wrappers for StyleHive components.

Each wrapper implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, so supervisor events name the service.

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine and
context cancellation drains connections with Shutdown. A listener failure
is returned so the supervisor restarts the server.

ReloadService re-reads the transaction source on an interval through a
Reloader (the API handler). Unchanged data is detected by fingerprint and
skipped. Failures are logged and never returned: the API keeps serving the
last installed model and the next tick retries.

# Usage

	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second))
	tree.AddDataService(services.NewReloadService(handler, services.ReloadServiceConfig{
	    Interval: cfg.Data.ReloadInterval,
	}, logging.Logger()))
*/
package services
