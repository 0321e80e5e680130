// Package middleware provides HTTP middleware for the capture assistant API.
//
// Middleware stack includes:
//   - CORS: the content script calls this service from the SEI host origin,
//     so cross-origin requests must be permitted
//   - RateLimit: per-IP token bucket rate limiting
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(cfg.RateLimit))
package middleware
