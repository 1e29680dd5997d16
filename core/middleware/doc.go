// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header) protecting the sync endpoints.
//     Health checks are skipped through Config.Next.
//   - rayid: generates a unique request id (ray id) for every incoming request,
//     storing it in the context for logger.WithRayID and echoing it in the
//     X-Ray-ID response header.
//
// These middleware components are registered globally in the serve command.
package middleware
