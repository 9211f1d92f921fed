// Package server runs the gateway's HTTP server and background workers.
//
// It handles startup, signal handling and graceful shutdown: on SIGTERM,
// SIGINT or SIGQUIT the workers are cancelled and the HTTP server drains
// in-flight requests before the process exits.
package server
