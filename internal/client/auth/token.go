package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// claims picks the fields the client reads from the token payload. Subject
// holds the email. Registered claims such as exp or aud are not checked, so
// their types do not matter.
type claims struct {
	Subject  string `json:"sub"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// CurrentUser is derived from the stored token on every call.
type CurrentUser struct {
	UserID   int64
	Username string
	Email    string
}

// decodeClaims reads the payload segment without verifying the signature.
func decodeClaims(token string) (*claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return nil, ErrMalformedToken
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("parse token payload: %w", err)
	}
	return &c, nil
}

// decodeSegment accepts base64url (the JWT alphabet) and standard base64,
// padded or not.
func decodeSegment(seg string) ([]byte, error) {
	b, err := jwt.NewParser(jwt.WithPaddingAllowed()).DecodeSegment(seg)
	if err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(seg, "="))
}
