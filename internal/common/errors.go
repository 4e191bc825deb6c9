// Package common holds sentinel errors shared across the server layers.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound         = errors.New("not found")
	ErrorUsernameTaken    = errors.New("username already exists")
	ErrorEmailTaken       = errors.New("email already exists")
	ErrorInvalidReference = errors.New("invalid reference")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
)
