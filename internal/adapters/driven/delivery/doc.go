// Package delivery sends filled contracts to a remote HTTP endpoint.
//
// Two payload shapes are supported: a messaging gateway authenticated with an
// "apikey" header, and a generic webhook with an optional bearer token. Each
// call makes exactly one attempt.
package delivery
