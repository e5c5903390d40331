// Package server exposes the HTTP API.
//
// Routes are mounted under /api/v1 with a CORS, request-ID, logging, and
// recovery middleware stack. All responses share a JSON envelope:
// {"success": true, "data": ...} on success and
// {"success": false, "error": {code, message}} on failure.
package server
