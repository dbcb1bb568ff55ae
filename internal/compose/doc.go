// Package compose turns a request draft into headers and a body on a
// transport-created request.
//
// ComposeHeaders applies, in order: the persona's mandatory headers, its
// default headers (unless suppressed), caller-added headers, the
// cross-persona protocol headers, and finally strips caller-removed
// headers. Later steps win on a name collision.
//
// EncodeBody places the draft body either as a raw JSON payload, on the
// query string (GET) or as form fields (everything else).
package compose
