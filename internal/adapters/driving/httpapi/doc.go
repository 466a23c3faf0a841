// Package httpapi exposes the contract pipeline over HTTP.
//
// Routes:
//   - POST /generate-contract: fill, deliver and record one contract
//   - GET /health: liveness probe
//   - GET /config: non-secret configuration view
//   - GET /api-docs: endpoint list, required fields and request schema
//
// Every response, including unknown routes and recovered panics, is JSON.
package httpapi
