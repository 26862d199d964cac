// Package discovery provides health-check registration against a service
// discovery agent.
//
// It defines the CheckRegistry contract used by the registrar and a provider
// factory so backends can be selected by configuration.
//
// # Backends
//
//   - discovery/consul: HashiCorp Consul agent check API
//   - discovery/static: in-memory registry for dry runs and tests
package discovery
