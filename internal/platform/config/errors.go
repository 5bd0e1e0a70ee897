package config

import "errors"

var (
	errMinSecretLength = errors.New("auth.jwt_secret must be at least 32 characters")
	errInvalidPort     = errors.New("app.http_port must be greater than 0")
)
