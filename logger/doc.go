// Package logger provides structured logging for linqkit using zerolog.
//
// Loggers are named per component and looked up through a registry, so the
// enumerable and pipeline packages can log without being handed a logger
// explicitly. Pipeline runs tag their records with a run ID and, when a
// span is active, with the OpenTelemetry trace and span IDs.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.Debug("stage dispatched", logger.Fields(logger.FieldRoute, "filter"))
package logger
