// Package definition locates the check-definition set of a backend inside a
// release. Sources are queried in order until one is present: the bundled
// healthchecks/<backend>/healthchecks.yml file, then the
// <backend>_healthchecks key of the release's appspec.
package definition
