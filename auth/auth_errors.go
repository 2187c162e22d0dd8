package auth

import "errors"

var (
	MissingAccessTokenErr = errors.New("auth response has no access token")
	MalformedProfileErr   = errors.New("malformed profile response")
)
