// Package service contains the application use cases for tasks. It sits
// between the HTTP handlers and the store interfaces in internal/store,
// validating input, applying transactional boundaries and translating store
// errors into errors the API layer can map to responses.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete store implementation.
package service
