// Package logger provides a structured logging interface for flickrget.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors
// - Optional append-only log file output
// - Global logger instance for easy access
//
// The logger has an explicit lifecycle: nothing is configured at import time,
// and no log file is created unless one is set in the configuration. The
// command layer calls Initialize exactly once after loading configuration and
// passes the resulting logger into the client, fetcher and storage layers.
//
// Basic Usage:
//
//	import "flickrget/pkg/logger"
//
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	    File:  "flickrget.log",
//	}
//	err := logger.Initialize(cfg)
//
//	logger.Info("starting search")
//	logger.WithField("word", "sunset").Info("word search started")
//	logger.WithError(err).Error("failed to download image")
//
// Structured fields:
//
//	log := logger.GetLogger().WithField("component", "fetcher")
//	log.InfoWithFields("page persisted", map[string]interface{}{
//	    "word": "sunset",
//	    "page": 3,
//	})
package logger
