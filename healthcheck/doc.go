// Package healthcheck defines the data model shared by every stage of the
// registration pipeline: the raw check declarations discovered in a release,
// the typed checks produced by validation, and the deployment being
// registered or replaced.
package healthcheck
