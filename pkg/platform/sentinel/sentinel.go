package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the shop API client
// return these (optionally wrapped) so services can translate them into
// user-facing behavior.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist (product gone from catalog, unknown user)
// - ErrConflict: entity already in the state the operation would establish
// - ErrUnavailable: remote shop backend unreachable or timed out
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
