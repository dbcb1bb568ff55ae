// Package log provides the logging abstraction used across utforge.
//
// The Logger interface keeps the forge and its adapters independent of a
// concrete logging library. A zerolog adapter and a no-op logger are
// provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, "debug")
//	logger.Info("request sent", log.String("method", "GET"), log.Int("status", 200))
//
// Tests and library callers that do not care about output use the no-op
// logger, which is also the default everywhere a logger is optional:
//
//	logger := log.NewNoopLogger()
package log
