// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

/*
Package supervisor runs the long-lived parts of serve mode under suture v4.

The tree has two layers:

	RootSupervisor ("log-analyzer")
	├── MessagingSupervisor ("messaging-layer")
	│   └── CloserService (findings publisher, if publishing is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog over the zerolog slog adapter. Canceling the context
passed to Serve stops every service, waiting up to ShutdownTimeout.

Service wrappers live in the services subpackage.
*/
package supervisor
