// Package generator turns validated checks into backend-native payloads:
// agent check registrations for Consul and JSON check definitions for Sensu.
// Generation is pure; the same check and deployment always produce the same
// payload.
package generator
