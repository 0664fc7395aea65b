// Package logger provides structured logging for wirekit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	log:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("container")
//	log.Debug("entry resolved", logger.Fields(logger.FieldEntry, "db"))
package logger
