package discovery

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownProvider is returned when no factory is registered for a provider.
var ErrUnknownProvider = errors.New("unknown discovery provider")

// CheckInfo describes one health check bound to a service instance.
type CheckInfo struct {
	// ServiceID is the service instance the check belongs to.
	ServiceID string
	// ID is the agent-wide check id, see healthcheck.ServiceCheckID.
	ID       string
	Name     string
	Interval string
	// Args is the script command line of a script check.
	Args []string
	// HTTP is the polled URL of an HTTP check.
	HTTP string
}

// CheckRegistry defines the contract for health-check registration and
// deregistration.
type CheckRegistry interface {
	// RegisterScriptCheck registers a check that runs check.Args.
	RegisterScriptCheck(ctx context.Context, check *CheckInfo) error

	// RegisterHTTPCheck registers a check that polls check.HTTP.
	RegisterHTTPCheck(ctx context.Context, check *CheckInfo) error

	// DeregisterCheck removes the check with the given id.
	DeregisterCheck(ctx context.Context, checkID string) error

	// Stats reports the calls the registry has completed.
	Stats() RegistryStats

	// Close releases any resources held by the registry.
	Close() error
}

// RegistryStats holds registry metrics.
type RegistryStats struct {
	RegisteredChecks   int
	DeregisteredChecks int
	LastCall           time.Time
}
