// Package server exposes per-user collections and AI settings over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/user/settings
//	POST /api/user/settings
//	GET  /api/user/{kind}
//	POST /api/user/{kind}
//	POST /api/user/{kind}/migrate
//
// The caller's identity is read from the X-User-ID header, which an upstream
// auth proxy is expected to set. Requests without it get 401.
package server
