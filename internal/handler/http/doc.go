// Package http implements the HTTP transport layer of the account keeper.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as request tracing, access logging, the
// per-request identity cache, JWT authentication and the administrative
// token check are handled in this package before requests are delegated to
// the service layer.
package http
