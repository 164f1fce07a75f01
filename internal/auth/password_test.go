package auth

import "testing"

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-digest", "secret123") {
		t.Error("VerifyPassword() accepted a malformed digest")
	}
	if VerifyPassword("", "secret123") {
		t.Error("VerifyPassword() accepted an empty digest")
	}
}
