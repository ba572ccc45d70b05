// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package logging wraps zerolog for the whole service.

Initialize once at startup from the logging config section:

	logging.Init(logging.Config{
	    Level:     cfg.Logging.Level,
	    Format:    cfg.Logging.Format,
	    Caller:    cfg.Logging.Caller,
	    Timestamp: true,
	})

Components take a zerolog.Logger and tag it:

	logger := logging.Logger().With().Str("component", "etl").Logger()

Request handlers log through the context so every entry carries the
request and correlation IDs set by the request ID middleware:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Weather lookup failed")

NewSlogLogger bridges to log/slog for libraries that only speak slog, such
as the sutureslog supervisor event hook.

Environment Variables (read by the config package):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file and line (default: false)
*/
package logging
