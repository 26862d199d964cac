// Package logger provides structured logging using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers carrying deployment fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.NewDefault("healthreg").WithComponent("registrar")
//	log.Info("registered check", logger.Fields(logger.FieldCheckID, "disk"))
package logger
