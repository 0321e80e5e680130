// Package server provides HTTP server setup for the SEI capture assistant.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, rate limiting, recovery, metrics)
//   - Upstream client construction (user API, SEI web service, integration API)
//   - Wizard workflow and session manager initialization
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Build upstream clients and the wizard workflow
//  4. Setup HTTP routes and middleware
//  5. Start HTTP server
//  6. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv := server.New(cfg, log)
//	if err := srv.Run(":8090"); err != nil {
//	    log.Fatal(err)
//	}
package server
