// Package config provides configuration loading, merging, and validation
// facilities for the crm-gateway service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (with envDefault fallbacks)
//  2. Command-line flags
//  3. JSON config file
//
// The merged result is validated once; missing upstream credentials or an
// insecure session secret are reported as errors and must stop startup.
// The main entry point is [GetStructuredConfig].
package config
