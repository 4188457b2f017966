package config

import "errors"

// ErrMissingSecret is returned when a production configuration has no
// session signing secret.
var ErrMissingSecret = errors.New("auth.jwt_secret is required in production (set WAITDESK_AUTH_JWT_SECRET)")
