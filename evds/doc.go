// Package evds implements the domain core of the bridge: parameter
// validation, request construction for the six EVDS operations and the
// client that executes them through a Transport collaborator.
//
// Validation happens strictly before any network activity, so malformed
// input fails fast without a round trip. Free-text identifiers (series
// codes, data group codes) are deliberately passed through unvalidated
// beyond the non-empty check; their vocabulary belongs to the remote
// service.
package evds
