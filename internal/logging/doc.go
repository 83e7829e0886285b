// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

// Package logging provides zerolog-based structured logging for Recwire.
//
// A global logger is configured once at startup with Init and handed to
// components, which add their own component field:
//
//	logger := logging.Init(logging.Config{Level: "debug", Format: "console"})
//	c := inject.New(inject.DefaultConfig(), logger)
//
// Commands carry their logger in the context with ContextWithLogger; Ctx
// and FromContext read it back, falling back to the process logger.
//
// # Correlation IDs
//
// Each top-level resolution and each warm-up run carries a short
// correlation ID generated with GenerateCorrelationID, so the debug lines of
// one resolution can be grouped:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Debug().Msg("warming components")
//
// # Environment
//
// RECWIRE_QUIET=1 lowers the default level to error before Init is called.
// Always terminate log chains with Msg or Send.
package logging
