package hash

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := Password("Str0ng!Pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "Str0ng!Pw" {
		t.Fatalf("expected hashed credential, got plaintext")
	}
	if !Verify("Str0ng!Pw", hashed) {
		t.Fatalf("expected correct password to verify")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	hashed, err := Password("Str0ng!Pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if Verify("Wr0ng!Pw!", hashed) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	// A malformed stored hash is a mismatch, not a panic or error.
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("expected garbage hash to fail verification")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Password("Str0ng!Pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Password("Str0ng!Pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salts to produce distinct hashes")
	}
}
