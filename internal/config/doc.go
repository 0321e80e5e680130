// Package config provides 12-factor configuration management for the SEI
// capture assistant.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Endpoints: base URLs of the user-controller, SEI web-service and
//     integration upstreams
//   - SEI: fixed request-envelope identifiers (system acronym, service id,
//     document series)
//   - Outbound: outbound HTTP client behavior (timeout, retries, rate limit)
//   - Logging: log level and output format
//   - RateLimit: per-IP inbound rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - USER_API_BASE, SEI_WS_BASE, INTEGRA_BASE
//   - SEI_SYSTEM_ACRONYM, SEI_SERVICE_ID, SEI_SERIES_ID
//   - OUTBOUND_TIMEOUT_SECONDS, OUTBOUND_MAX_RETRIES, OUTBOUND_RATE_LIMIT_RPS
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
