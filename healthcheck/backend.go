package healthcheck

import "fmt"

// Backend names a registration target.
type Backend string

const (
	// Consul is the service-discovery health-check API.
	Consul Backend = "consul"
	// Sensu is the monitoring agent reading JSON check files from a directory.
	Sensu Backend = "sensu"
)

// Backends lists every supported backend in registration order.
var Backends = []Backend{Consul, Sensu}

// ParseBackend converts s to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case Consul, Sensu:
		return Backend(s), nil
	}
	return "", fmt.Errorf("unsupported backend %q", s)
}

// DisplayName returns the human-facing backend name used in log and error messages.
func (b Backend) DisplayName() string {
	switch b {
	case Consul:
		return "Consul"
	case Sensu:
		return "Sensu"
	}
	return string(b)
}

// DefinitionKey is the key holding the backend's check definitions, both in a
// bundled definition file and in the appspec.
func (b Backend) DefinitionKey() string {
	return string(b) + "_healthchecks"
}
