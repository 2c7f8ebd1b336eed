// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package supervisor provides process supervision for StyleHive using suture v4.

The tree separates the reload loop from the HTTP server so a failure in
one layer restarts that layer only:

	RootSupervisor ("stylehive")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (if data.reload_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are
logged through log/slog via sutureslog; main passes
logging.NewSlogLogger("supervisor") so they land in the zerolog stream.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See the services subpackage for the service wrappers.
*/
package supervisor
