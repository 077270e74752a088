package common

import "errors"

// ErrTokenExpired is reported when a locally inspected token has an
// "exp" claim in the past.
var ErrTokenExpired = errors.New("token expired")
