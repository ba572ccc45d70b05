// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package main is the entry point for the outfitter HTTP service.

The service answers "what goes with this garment?": given a base article it
returns per-category outfit suggestions built from co-purchase counts and
colour, style and functional compatibility rules.

# Application Architecture

	RootSupervisor ("outfitter")
	├── DataSupervisor ("data-layer")
	│   └── Dataset reloader (DATA_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: optional .env, then Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON/console output modes
 3. Engine: recommend.Engine with Prometheus observer
 4. Dataset: catalog CSV plus badger snapshot or co-purchase shard CSVs
 5. Weather: open-meteo client behind a circuit breaker
 6. Supervisor Tree: suture v4
 7. HTTP Server: chi router with middleware stack

A failed initial dataset load is fatal: the service cannot answer anything
without its catalog and co-purchase index.

# Configuration

Common environment variables:

	CATALOG_PATH=data/articles_filtered.csv
	COPURCHASE_GLOB=data/copurchase_part_*.csv
	COPURCHASE_SNAPSHOT_PATH=data/copurchase.badger
	DATA_RELOAD_INTERVAL=1h
	HTTP_PORT=8080
	LOG_LEVEL=info

# Signal Handling

SIGINT and SIGTERM cancel the root context; the HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT.
*/
package main
