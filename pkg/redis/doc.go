// Package redis provides Redis connection helpers with retry logic and a
// healthcheck probe.
package redis
