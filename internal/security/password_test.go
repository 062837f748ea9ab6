package security

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	password := "pw123456"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == password {
		t.Fatal("hash must not equal the plain password")
	}

	if !VerifyPassword(password, hash) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("expected non-matching password to fail verification")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	// Two hashes of the same password differ because of the embedded salt.
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not a bcrypt hash", hash: "plain-text"},
		{name: "truncated", hash: "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("anything", tt.hash) {
				t.Error("expected malformed hash to fail verification")
			}
		})
	}
}
