// Package domain contains the core value types of the request forge.
//
// This package is the innermost layer. It has no dependencies on transport,
// file system or logging concerns and only models what a composed request
// is made of.
//
// # Types
//
//   - [Persona]: the client shape (WebApp or Mobile) a request imitates
//   - [Platform]: the backend target (PlayStation or Xbox) selecting the base host
//   - [Fields]: ordered key/value pairs used for query strings and form bodies
//   - [Header]: ordered, case-sensitive header set
//   - [Request]: the mutable request object a transport creates and sends
//   - [Response]: the transport's answer, with text and JSON projections
//   - [Draft]: an immutable snapshot of everything a forge accumulated
package domain
