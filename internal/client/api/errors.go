package api

import "errors"

// ErrUnavailable indicates a transport-level failure: the request never
// produced an HTTP response.
var ErrUnavailable = errors.New("server unavailable")

// Error carries the human-readable failure message supplied by the server.
// A non-2xx HTTP status and a {success:false} body both map to an *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a server rejection for a missing or
// insufficient session.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == 401 || apiErr.Status == 403
}
