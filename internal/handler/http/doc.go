// Package http implements the REST surface of the gateway.
//
// It decodes and validates request bodies, applies rate limits, security
// headers, tracing and access logging, authenticates bearer tokens and maps
// service errors to HTTP statuses. Business rules live in the service layer.
package http
