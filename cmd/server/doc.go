// Package main is the entry point for the SEI capture assistant server.
//
// The server sits between the browser content script injected into the SEI
// host page and the three upstream services it orchestrates:
//
//	Content script → capture assistant → user-controller API (identity)
//	                                   → SEI web-service API (units, inclusion)
//	                                   → integration API (records, capture)
//
// The server provides:
//   - Session-based wizard API for the capture flow
//   - Per-IP rate limiting and CORS for the host origin
//   - Prometheus metrics and health reporting
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for the Jaru installation
//
// Usage:
//
//	# Production mode
//	./server -port 8090
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
