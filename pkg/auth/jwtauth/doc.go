// Package jwtauth adapts an HS256 JWT cookie to the auth.Source
// interface. It only reads and validates externally issued tokens; token
// refresh and rotation are out of scope.
package jwtauth
