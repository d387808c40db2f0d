// Package shared holds the JSON boundary used by every HTTP handler: request
// decoding and validation, response writing, and the trace ID carried in the
// request context.
package shared
