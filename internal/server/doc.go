// Package server provides HTTP routing, middleware, and the catalog endpoints of the VideoHub API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Catalog Endpoint
//
// [VideoHandler] serves the normalized video catalog on /api/videos and the
// legacy /api/notion path. Every request performs one upstream Notion query,
// normalizes the rows, and responds with the full record set — there is no
// caching and no partial success. Error responses keep the upstream status
// code and raw body so the dashboard can surface diagnostics.
//
// # Middleware Stack
//
// [Recover] (one failure domain per request), [CORS] (all origins, the
// original proxy's header list), and [RequestLogger] (request id + duration).
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
