package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned by Decode when the raw string is not a
// three-segment token with a JSON payload.
var ErrMalformed = errors.New("malformed credential")

// Claims is the decoded credential payload. Only the fields the demo uses
// are mapped; anything else in the payload is ignored.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Valid reports whether the credential has not expired at the given instant.
func (c *Claims) Valid(now time.Time) bool {
	return c.ExpiresAt.UnixMilli() > now.UnixMilli()
}

// Mint creates a signed credential for the subject with the given TTL.
// Claims: sub, iat, exp.
func Mint(secret, subject string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Decode extracts the subject and expiry from the credential payload.
// This is a payload-only decode: the signature segment is NOT verified, so
// decode success must never be treated as proof of authenticity. Malformed
// input yields ErrMalformed, never a panic.
func Decode(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}
	b, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// try standard base64 (pad) as a fallback
		b, err = base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	sub, _ := payload["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrMalformed)
	}
	exp, err := numericClaim(payload["exp"])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &Claims{Subject: sub, ExpiresAt: time.Unix(exp, 0)}, nil
}

// numericClaim handles the encodings a JSON number may arrive in.
func numericClaim(v interface{}) (int64, error) {
	switch vv := v.(type) {
	case float64:
		return int64(vv), nil
	case int64:
		return vv, nil
	case json.Number:
		i64, err := vv.Int64()
		if err != nil {
			f, err2 := vv.Float64()
			if err2 != nil {
				return 0, err
			}
			return int64(f), nil
		}
		return i64, nil
	case nil:
		return 0, fmt.Errorf("exp claim not present")
	default:
		return 0, fmt.Errorf("unsupported exp type %T", v)
	}
}
