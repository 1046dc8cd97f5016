// Package server runs the HTTP API and the optional gRPC health endpoint
// side by side and shuts both down when the run context ends.
package server
