// Package handlers implements the HTTP API for the folder statistics
// service: the stats endpoints, background refresh control, stopword
// management, and health probes.
package handlers
