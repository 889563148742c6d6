// Package mongo provides MongoDB connection helpers with retry logic and a
// healthcheck probe.
package mongo
