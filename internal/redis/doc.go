// Package redis implements the Redis-backed reaction store.
//
// Mutations run through a Lua script so the increment, the floored decrement,
// and the read-back of the full record happen in one atomic step. Two client
// hooks add per-command metrics and a circuit breaker.
package redis
