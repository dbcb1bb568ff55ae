// Package ports defines the interfaces that connect the forge to its
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [Transport]: creates request objects and sends them
//   - [HTTPClient]: the *http.Client subset the net/http transport relies on
//   - [Logger]: structured logging abstraction
//
// The forge and the composition engine depend only on these interfaces.
// Adapters under internal/adapters implement them on top of net/http,
// fasthttp and Prometheus.
package ports
