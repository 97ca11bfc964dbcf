package auth

import (
	"strings"
	"testing"
)

func TestGenerateTokenShape(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != TokenLength {
		t.Fatalf("expected %d characters, got %d", TokenLength, len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("unexpected character %q in token", r)
		}
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatal("generated a duplicate token")
		}
		seen[token] = struct{}{}
	}
}

func TestDigestToken(t *testing.T) {
	a := DigestToken("some-token")
	b := DigestToken("some-token")
	if a != b {
		t.Fatal("digest is not deterministic")
	}
	if a == DigestToken("other-token") {
		t.Fatal("distinct tokens share a digest")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(a))
	}
	if a == "some-token" {
		t.Fatal("digest equals the plaintext")
	}
}
