// Package redis provides a Redis-backed dataset cache so several kwscope
// processes can share fetched category snapshots.
package redis
