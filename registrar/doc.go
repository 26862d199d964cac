// Package registrar drives the register and deregister lifecycle of a
// release's health checks against one backend.
//
// Register resolves the release's definitions, validates the whole set and
// then submits one check at a time. The first failed submission aborts the
// batch. Deregister resolves the previous release's definitions and removes
// every check it names, logging failures and carrying on.
//
// Both runs share one per-check Step type and differ only in the Policy used
// to reduce step outcomes into a Result.
package registrar
