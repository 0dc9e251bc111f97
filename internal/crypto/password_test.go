package crypto

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1pass")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "secret1pass" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if err := CheckPassword(hash, "secret1pass"); err != nil {
		t.Fatalf("expected password to match")
	}
	if err := CheckPassword(hash, "wrong1pass"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("secret1pass")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	h2, err := HashPassword("secret1pass")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ")
	}
}
