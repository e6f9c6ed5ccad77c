package tokens

import "errors"

var ErrInvalidClaims = errors.New("invalid claims")
