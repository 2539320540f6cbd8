// Package domain defines the core reaction types and cross-cutting interfaces.
//
// Concept-oriented files (reaction.go, content.go, errors.go) hold the shared
// types and the contracts between the aggregate service, the stores, and the
// client controller. No implementation code - just contracts and pure functions.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain
