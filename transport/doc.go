// Package transport provides the default HTTP collaborator of the bridge.
//
// The core treats the transport as a single synchronous, blocking GET per
// operation and attempts no recovery of its own. Timeout and retry policy
// live here and only here: each attempt is bounded by Options.Timeout
// (30s default) and connection-level failures are retried up to
// Options.Attempts times (3 by default, matching the reference behavior).
package transport
