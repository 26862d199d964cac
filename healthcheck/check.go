package healthcheck

// ConsulCheck is a validated Consul check, either *ScriptCheck or *HTTPCheck.
type ConsulCheck interface {
	CheckID() string
	CheckName() string
	consulCheck()
}

// ScriptCheck runs a script bundled with the release.
type ScriptCheck struct {
	ID       string
	Name     string
	Interval string
	// Script is the declared path relative to the scripts base directory,
	// without a leading separator.
	Script string
	// Path is the absolute location of the script inside the archive.
	Path string
}

// HTTPCheck polls a URL. HTTP may still contain the ${PORT} placeholder.
type HTTPCheck struct {
	ID       string
	Name     string
	Interval string
	HTTP     string
}

func (c *ScriptCheck) CheckID() string   { return c.ID }
func (c *ScriptCheck) CheckName() string { return c.Name }
func (*ScriptCheck) consulCheck()        {}

func (c *HTTPCheck) CheckID() string   { return c.ID }
func (c *HTTPCheck) CheckName() string { return c.Name }
func (*HTTPCheck) consulCheck()        {}

// SensuScript locates the executable of a Sensu check, either LocalScript or
// ServerScript.
type SensuScript interface {
	ScriptPath() string
	sensuScript()
}

// LocalScript is bundled with the release and must be made executable.
type LocalScript struct {
	Declared string
	Path     string
}

// ServerScript already exists on the host in one of the plugin search paths.
type ServerScript struct {
	Declared string
	Path     string
}

func (s LocalScript) ScriptPath() string  { return s.Path }
func (LocalScript) sensuScript()          {}
func (s ServerScript) ScriptPath() string { return s.Path }
func (ServerScript) sensuScript()         {}

// SensuCheck is a validated Sensu check.
type SensuCheck struct {
	ID       string
	Name     string
	Interval float64
	Script   SensuScript
	Options  SensuOptions
}

// IsLocal reports whether the check runs a script bundled with the release.
func (c *SensuCheck) IsLocal() bool {
	_, ok := c.Script.(LocalScript)
	return ok
}

// SensuOptions holds the optional Sensu properties of a declaration.
type SensuOptions struct {
	AlertAfter   *float64 `mapstructure:"alert_after"`
	RealertEvery *float64 `mapstructure:"realert_every"`
	Timeout      *float64 `mapstructure:"timeout"`
	Occurrences  *float64 `mapstructure:"occurrences"`
	Refresh      *float64 `mapstructure:"refresh"`

	// Tip and Runbook accept either a string or a boolean.
	Tip     any `mapstructure:"tip"`
	Runbook any `mapstructure:"runbook"`

	Standalone       *bool `mapstructure:"standalone"`
	Aggregate        *bool `mapstructure:"aggregate"`
	TicketingEnabled *bool `mapstructure:"ticketing_enabled"`
	PagingEnabled    *bool `mapstructure:"paging_enabled"`
	Project          *bool `mapstructure:"project"`
	Page             *bool `mapstructure:"page"`

	SLA                          *string `mapstructure:"sla"`
	Team                         *string `mapstructure:"team"`
	OverrideNotificationSettings *string `mapstructure:"override_notification_settings"`
	ScriptArguments              string  `mapstructure:"script_arguments"`

	NotificationEmail         []string `mapstructure:"notification_email" validate:"omitempty,dive,sensu_email"`
	OverrideNotificationEmail []string `mapstructure:"override_notification_email" validate:"omitempty,dive,sensu_email"`
	OverrideChatChannel       []string `mapstructure:"override_chat_channel"`
}
