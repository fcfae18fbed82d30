package pkce

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
)

// s256Challenge derives the expected challenge for a verifier.
func s256Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func TestChallenge(t *testing.T) {
	t.Parallel()

	verifier := strings.Repeat("a", 43)

	tests := []struct {
		name    string
		method  string
		want    string
		wantErr bool
	}{
		{
			name:   "S256",
			method: "S256",
			want:   s256Challenge(verifier),
		},
		{
			name:   "plain",
			method: "plain",
			want:   verifier,
		},
		{
			name:   "empty method defaults to plain",
			method: "",
			want:   verifier,
		},
		{
			name:    "unknown method",
			method:  "S512",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Challenge(verifier, tt.method)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Challenge() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Challenge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	tests := []struct {
		name      string
		verifier  string
		challenge string
		method    string
		want      bool
	}{
		{
			name:      "S256 match",
			verifier:  verifier,
			challenge: s256Challenge(verifier),
			method:    "S256",
			want:      true,
		},
		{
			name:      "S256 mismatch",
			verifier:  verifier,
			challenge: s256Challenge("different-verifier-padded-to-43-chars-xxxxx"),
			method:    "S256",
			want:      false,
		},
		{
			name:      "plain match",
			verifier:  strings.Repeat("p", 43),
			challenge: strings.Repeat("p", 43),
			method:    "plain",
			want:      true,
		},
		{
			name:      "plain mismatch",
			verifier:  strings.Repeat("p", 43),
			challenge: strings.Repeat("q", 43),
			method:    "plain",
			want:      false,
		},
		{
			name:      "verifier below minimum length",
			verifier:  "too-short",
			challenge: s256Challenge("too-short"),
			method:    "S256",
			want:      false,
		},
		{
			name:      "verifier above maximum length",
			verifier:  strings.Repeat("v", 129),
			challenge: s256Challenge(strings.Repeat("v", 129)),
			method:    "S256",
			want:      false,
		},
		{
			name:      "unknown method never verifies",
			verifier:  verifier,
			challenge: verifier,
			method:    "S512",
			want:      false,
		},
		{
			name:      "verifier at minimum length",
			verifier:  strings.Repeat("m", 43),
			challenge: s256Challenge(strings.Repeat("m", 43)),
			method:    "S256",
			want:      true,
		},
		{
			name:      "verifier at maximum length",
			verifier:  strings.Repeat("m", 128),
			challenge: s256Challenge(strings.Repeat("m", 128)),
			method:    "S256",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Verify(tt.verifier, tt.challenge, tt.method); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}
