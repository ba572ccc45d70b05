// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package supervisor provides process supervision for the outfitter service
using suture v4.

# Overview

Services are organized into two layers:

	RootSupervisor ("outfitter")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (if DATA_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing reload restarts inside the data layer only; the API layer keeps
serving the dataset the engine already holds.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewReloadService(loader, reloadCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, timeout, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning suture.ErrDoNotRestart stops a service permanently; returning an
error wrapping suture.ErrTerminateSupervisorTree stops the whole tree.

# See Also

  - internal/supervisor/services: Service wrappers
  - github.com/thejerf/suture/v4: Underlying library
*/
package supervisor
