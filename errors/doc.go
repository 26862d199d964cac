// Package errors provides the error kinds raised while registering health
// checks. Every failure is an *AppError carrying a machine-readable code, a
// human-readable message, optional details and an underlying cause.
package errors
