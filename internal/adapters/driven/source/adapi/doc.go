// Package adapi fetches keyword statistics from an advertising API.
//
// Requests carry a bearer token, are paced by a token-bucket limiter that
// honours 429 Retry-After hints, and pass through a circuit breaker so a
// failing endpoint is not hammered while the user switches categories.
package adapi
