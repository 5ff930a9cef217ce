package mts

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	tilesetIDPattern = regexp.MustCompile(`^(?i)[a-z0-9-_]{1,32}\.[a-z0-9-_]{1,32}$`)
	sourceIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9-_]{1,32}$`)
)

// ValidTilesetID reports whether id is a well-formed tileset ID
// (username.handle, each segment up to 32 chars of [a-z0-9-_],
// case-insensitive).
func ValidTilesetID(id string) bool {
	return tilesetIDPattern.MatchString(id)
}

// ValidSourceID reports whether id is a well-formed source ID (up to 32
// chars of [a-zA-Z0-9-_]).
func ValidSourceID(id string) bool {
	return sourceIDPattern.MatchString(id)
}

// TokenUsername extracts the username ("u") claim from a Mapbox access
// token. Mapbox tokens are JWT-shaped; the payload segment is base64url
// without padding.
func TokenUsername(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("token does not contain a payload segment")
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return "", fmt.Errorf("decode token payload: %w", err)
	}

	var claims struct {
		Username string `json:"u"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("parse token payload: %w", err)
	}
	if claims.Username == "" {
		return "", fmt.Errorf("token does not contain a username claim")
	}
	return claims.Username, nil
}

// checkTokenUsername verifies that the configured token belongs to the
// configured account. Source uploads write into the account's bucket, so a
// mismatched token fails early instead of at the storage layer.
func (c *Client) checkTokenUsername() error {
	owner, err := TokenUsername(c.token)
	if err != nil {
		return err
	}
	if owner != c.username {
		return fmt.Errorf("token username %q does not match username %q", owner, c.username)
	}
	return nil
}
