package healthcheck

import (
	"strings"

	"github.com/kbukum/healthreg/release"
)

// PlatformWindows selects PowerShell-wrapped Sensu commands.
const PlatformWindows = "windows"

// Deployment is the release being registered and, for deregistration, the
// release it replaces.
type Deployment struct {
	ArchiveDir   string
	AppSpec      *release.AppSpec
	ServiceID    string
	Slice        string
	Port         int
	Platform     string
	InstanceTags map[string]string
	Previous     *PreviousDeployment
}

// PreviousDeployment identifies the release that was active before this one.
type PreviousDeployment struct {
	ID         string
	ArchiveDir string
}

// EffectiveSlice returns the blue/green slice label, or "" when the slice is
// unset or "none" in any case.
func (d *Deployment) EffectiveSlice() string {
	if strings.EqualFold(d.Slice, "none") {
		return ""
	}
	return d.Slice
}

// HasPrevious reports whether a previous deployment is known.
func (d *Deployment) HasPrevious() bool {
	return d.Previous != nil && d.Previous.ID != ""
}

// IsWindows reports whether the target host runs Windows.
func (d *Deployment) IsWindows() bool {
	return strings.EqualFold(d.Platform, PlatformWindows)
}
