package mts

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestValidTilesetID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"user.tileset", true},
		{"user.hello-world_2", true},
		{"USER.TILESET", true},
		{"user.1", true},
		{strings.Repeat("a", 32) + "." + strings.Repeat("b", 32), true},
		{"user", false},
		{"user.", false},
		{".tileset", false},
		{"user.til.eset", false},
		{"user.tile set", false},
		{"user.tile$et", false},
		{strings.Repeat("a", 33) + ".tileset", false},
		{"user." + strings.Repeat("b", 33), false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidTilesetID(tc.id); got != tc.want {
			t.Errorf("ValidTilesetID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestValidSourceID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"source", true},
		{"Source_1-a", true},
		{strings.Repeat("x", 32), true},
		{strings.Repeat("x", 33), false},
		{"source id", false},
		{"source.id", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidSourceID(tc.id); got != tc.want {
			t.Errorf("ValidSourceID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestTokenUsername(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"u":"testuser"}`))
	token := "sk." + payload + ".signature"

	got, err := TokenUsername(token)
	if err != nil {
		t.Fatalf("TokenUsername: %v", err)
	}
	if got != "testuser" {
		t.Errorf("TokenUsername = %q, want %q", got, "testuser")
	}
}

func TestTokenUsernamePadded(t *testing.T) {
	// Some tokens carry standard base64 padding on the payload segment.
	payload := base64.URLEncoding.EncodeToString([]byte(`{"u":"padded"}`))
	token := "sk." + payload

	got, err := TokenUsername(token)
	if err != nil {
		t.Fatalf("TokenUsername: %v", err)
	}
	if got != "padded" {
		t.Errorf("TokenUsername = %q, want %q", got, "padded")
	}
}

func TestTokenUsernameErrors(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"no payload segment", "justonesegment"},
		{"not base64", "sk.!!!.sig"},
		{"no username claim", "sk." + base64.RawURLEncoding.EncodeToString([]byte(`{}`)) + ".sig"},
		{"not json", "sk." + base64.RawURLEncoding.EncodeToString([]byte(`hello`)) + ".sig"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := TokenUsername(tc.token); err == nil {
				t.Errorf("TokenUsername(%q) succeeded, want error", tc.token)
			}
		})
	}
}

func TestCheckTokenUsername(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"u":"owner"}`))
	token := "sk." + payload + ".sig"

	c, err := New("owner", token)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.checkTokenUsername(); err != nil {
		t.Errorf("checkTokenUsername: %v", err)
	}

	c, err = New("someoneelse", token)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.checkTokenUsername(); err == nil {
		t.Error("checkTokenUsername succeeded for mismatched account")
	}
}
