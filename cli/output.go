package cli

import (
	"fmt"
	"io"

	"github.com/kbukum/healthreg/discovery/static"
	"github.com/kbukum/healthreg/healthcheck"
	"github.com/kbukum/healthreg/registrar"
)

func printResult(w io.Writer, verb string, res registrar.Result) {
	if res.Source == "" {
		fmt.Fprintf(w, "%s: no health checks\n", res.Backend)
		return
	}
	fmt.Fprintf(w, "%s: %s %d of %d from %s\n",
		res.Backend, verb, len(res.Succeeded), res.Attempted()+len(res.Skipped), res.Source)
	for _, f := range res.Failed {
		fmt.Fprintf(w, "  failed %s: %v\n", f.CheckID, f.Err)
	}
	for _, id := range res.Skipped {
		fmt.Fprintf(w, "  skipped %s\n", id)
	}
}

// printDryRun shows what a dry run would have applied.
func (a *app) printDryRun(w io.Writer, d *healthcheck.Deployment, results []registrar.Result) {
	if reg, ok := a.registry.(*static.Provider); ok {
		for _, c := range reg.Checks() {
			if len(c.Args) > 0 {
				fmt.Fprintf(w, "consul %s script %v every %s\n", c.ID, c.Args, c.Interval)
			} else {
				fmt.Fprintf(w, "consul %s http %s every %s\n", c.ID, c.HTTP, c.Interval)
			}
		}
	}
	for _, res := range results {
		if res.Backend != healthcheck.Sensu {
			continue
		}
		for _, id := range res.Succeeded {
			data, err := a.sensuDir.Read(d.ServiceID, id)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "sensu %s\n%s\n", a.sensuDir.Path(d.ServiceID, id), data)
		}
	}
}
