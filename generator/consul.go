package generator

import (
	"fmt"
	"strings"

	"github.com/kbukum/healthreg/healthcheck"
)

// ConsulPayload is one agent check registration. Exactly one of Args and
// HTTP is set.
type ConsulPayload struct {
	ServiceID      string
	ServiceCheckID string
	Name           string
	Interval       string
	Args           []string
	HTTP           string
}

// IsScript reports whether the payload registers a script check.
func (p ConsulPayload) IsScript() bool { return len(p.Args) > 0 }

// Command renders Args as a single command line.
func (p ConsulPayload) Command() string {
	return strings.Join(p.Args, " ")
}

// ForConsul builds the registration payload of check for deployment d.
func ForConsul(check healthcheck.ConsulCheck, d *healthcheck.Deployment) (ConsulPayload, error) {
	p := ConsulPayload{
		ServiceID:      d.ServiceID,
		ServiceCheckID: healthcheck.ServiceCheckID(d.ServiceID, check.CheckID()),
		Name:           check.CheckName(),
	}

	switch c := check.(type) {
	case *healthcheck.ScriptCheck:
		p.Interval = c.Interval
		p.Args = []string{c.Path}
		if slice := d.EffectiveSlice(); slice != "" {
			p.Args = append(p.Args, slice)
		}
	case *healthcheck.HTTPCheck:
		p.Interval = c.Interval
		p.HTTP = FormatHTTP(c.HTTP, d.Port)
	default:
		return p, fmt.Errorf("unsupported consul check %T", check)
	}
	return p, nil
}
