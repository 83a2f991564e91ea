// Package server provides the slim request context consumed by route
// middleware, plus redirect target validation.
package server
