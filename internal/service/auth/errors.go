package auth

import "errors"

// Authentication errors. All of them map to 401 at the API boundary.
var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password; callers cannot tell which.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrWrongTokenType indicates a refresh token was used as an access token or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or its signature doesn't match.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")
)
