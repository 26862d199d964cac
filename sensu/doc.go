// Package sensu manages check-definition files in a Sensu client's
// configuration directory. Each check is stored as
// <serviceId>-<checkId>.json.
package sensu
