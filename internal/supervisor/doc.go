// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs Reelmatch's long-lived services under a suture v4
tree.

	root ("reelmatch")
	├── engine-layer
	│   └── StatsReporterService (periodic engine summary)
	└── api-layer
	    └── HTTPServerService

The recommendation state is built before the tree starts, so no supervised
service ever serves requests without it. Crashed services restart with
suture's backoff; cancelling the Serve context shuts every layer down within
the configured timeout.

Supervisor events are logged through sutureslog, backed by the zerolog
logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddEngineService(services.NewStatsReporterService(engine, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	err = tree.Serve(ctx)
*/
package supervisor
