// Package logger provides structured logging for the storefront using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("store")
//	log.Info("catalog loaded", logger.Fields("source", "backend", "count", 32))
package logger
