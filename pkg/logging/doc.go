// Package logging provides structured logging configuration for dynlabel.
//
// It wraps log/slog with the level and format knobs the CLI exposes:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatText,
//	})
//	logger.Debug("script run failed", "cmd", cmd, "error", err)
//
// Library packages accept a *slog.Logger and fall back to logging.Nop()
// when given nil, so they stay silent unless the caller opts in.
package logging
