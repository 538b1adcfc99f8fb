// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

/*
Package supervisor provides process supervision for SocialPulse using suture v4.

Services are organized into two layers for failure isolation:

	RootSupervisor ("socialpulse")
	├── DataSupervisor ("data-layer")
	│   ├── RefreshService (sentiment cache, if SENTIMENT_ENABLED)
	│   └── cache janitor (response cache expiry)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A sentiment service outage that makes the refresh loop fail repeatedly backs
off inside the data layer and never takes the HTTP server down with it.

# Usage

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(responseCache)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

Supervisor events (service start, failure, backoff) are logged through
sutureslog into the same zerolog stream as the rest of the application.
*/
package supervisor
