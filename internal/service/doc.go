// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their store through constructor injection and never
// depend on a specific infrastructure implementation. Expected outcomes
// (missing user, duplicate email, invalid input) are returned as sentinel
// errors from internal/store and internal/domain, wrapped with context, so
// the API layer can map them to HTTP status codes with errors.Is.
package service
