package codeforces

import "errors"

// ErrMalformedResponse is returned when the API answered with HTTP 200 but the body is not a
// valid envelope or its result is not the JSON shape the method returns.
var ErrMalformedResponse = errors.New("codeforces: malformed response")
