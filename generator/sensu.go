package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/kbukum/healthreg/healthcheck"
)

// Sensu defaults applied when a declaration leaves a property unset.
const (
	DefaultAlertAfter   = 600
	DefaultOccurrences  = 5
	DefaultRealertEvery = 30
	DefaultTimeout      = 120
	DefaultRunbook      = "Please provide useful information to resolve alert"
	DefaultSLA          = "No SLA defined"
	DefaultTip          = "Fill me up with information"
	Undefined           = "undef"

	// ReservedTagPrefix marks instance tags owned by the cloud provider.
	ReservedTagPrefix = "aws:"

	windowsShell = "powershell.exe -NonInteractive -NoProfile -ExecutionPolicy Bypass -file"
)

// Deprecation warnings.
const (
	WarnNotificationEmail = "'notification_email' property is deprecated, please use 'override_notification_email' instead"
	WarnTeam              = "'team' property is deprecated, please use 'override_notification_settings' instead"
)

// SensuPayload is the JSON check definition of one Sensu check.
type SensuPayload struct {
	Name       string
	Definition map[string]any
	// Warnings lists deprecated properties the definition fell back to.
	Warnings []string
}

// Render encodes the definition as indented JSON with sorted keys.
func (p SensuPayload) Render() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(p.Definition); err != nil {
		return nil, fmt.Errorf("encode sensu check %s: %w", p.Name, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ForSensu builds the check definition of check for deployment d.
func ForSensu(check healthcheck.SensuCheck, d *healthcheck.Deployment) SensuPayload {
	o := check.Options
	var warnings []string

	email := o.OverrideNotificationEmail
	if email == nil && o.NotificationEmail != nil {
		warnings = append(warnings, WarnNotificationEmail)
		email = o.NotificationEmail
	}

	var team any
	switch {
	case o.OverrideNotificationSettings != nil:
		team = *o.OverrideNotificationSettings
	case o.Team != nil:
		warnings = append(warnings, WarnTeam)
		team = *o.Team
	}

	def := map[string]any{
		"aggregate":          boolOr(o.Aggregate, false),
		"alert_after":        numberOr(o.AlertAfter, DefaultAlertAfter),
		"command":            sensuCommand(check, d),
		"handlers":           []string{"default"},
		"interval":           check.Interval,
		"notification_email": joinOr(email, Undefined),
		"occurrences":        numberOr(o.Occurrences, DefaultOccurrences),
		"page":               boolOr(o.PagingEnabled, false),
		"project":            boolOr(o.Project, false),
		"realert_every":      numberOr(o.RealertEvery, DefaultRealertEvery),
		"runbook":            valueOr(o.Runbook, DefaultRunbook),
		"sla":                stringOr(o.SLA, DefaultSLA),
		"slack_channel":      joinOr(o.OverrideChatChannel, Undefined),
		"standalone":         boolOr(o.Standalone, true),
		"subscribers":        []string{"sensu-base"},
		"tags":               []string{},
		"team":               team,
		"ticket":             boolOr(o.TicketingEnabled, false),
		"timeout":            numberOr(o.Timeout, DefaultTimeout),
		"tip":                valueOr(o.Tip, DefaultTip),
	}
	// keys colliding after lowercasing resolve to the last one in sorted order
	for _, key := range slices.Sorted(maps.Keys(d.InstanceTags)) {
		if strings.HasPrefix(key, ReservedTagPrefix) {
			continue
		}
		def["ttl_"+strings.ToLower(key)] = d.InstanceTags[key]
	}

	return SensuPayload{
		Name:       check.Name,
		Definition: map[string]any{"checks": map[string]any{check.Name: def}},
		Warnings:   warnings,
	}
}

func sensuCommand(check healthcheck.SensuCheck, d *healthcheck.Deployment) string {
	path := check.Script.ScriptPath()
	command := path
	if d.IsWindows() {
		command = fmt.Sprintf(`%s "%s"`, windowsShell, path)
	}

	args := check.Options.ScriptArguments
	if check.IsLocal() {
		args = strings.Join(nonEmpty(args, d.EffectiveSlice()), " ")
	}
	return strings.TrimRight(command+" "+args, " \t\r\n")
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func numberOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func valueOr(v any, def string) any {
	if v == nil {
		return def
	}
	return v
}

func joinOr(values []string, def string) string {
	if values == nil {
		return def
	}
	return strings.Join(values, ",")
}
