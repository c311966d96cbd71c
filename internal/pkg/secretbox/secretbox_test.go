package secretbox

import (
	"testing"
)

func TestEncryptDecrypt(t *testing.T) {
	box, err := New("test-secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	plaintext := "sk-proj-abc123"
	ciphertext, iv, err := box.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if string(ciphertext) == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := box.Decrypt(ciphertext, iv)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plaintext {
		t.Fatalf("Decrypt = %q, want %q", got, plaintext)
	}
}

func TestEncryptUniqueIV(t *testing.T) {
	box, _ := New("test-secret")

	_, iv1, err := box.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	_, iv2, err := box.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if string(iv1) == string(iv2) {
		t.Fatal("IVs should differ between encryptions")
	}
}

func TestDecryptWrongSecret(t *testing.T) {
	box1, _ := New("secret-one")
	box2, _ := New("secret-two")

	ciphertext, iv, err := box1.Encrypt("api-key")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := box2.Decrypt(ciphertext, iv); err != ErrDecryptFailed {
		t.Fatalf("Decrypt with wrong secret: got %v, want ErrDecryptFailed", err)
	}
}

func TestDecryptTampered(t *testing.T) {
	box, _ := New("test-secret")

	ciphertext, iv, err := box.Encrypt("api-key")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	ciphertext[0] ^= 0xff
	if _, err := box.Decrypt(ciphertext, iv); err != ErrDecryptFailed {
		t.Fatalf("Decrypt tampered: got %v, want ErrDecryptFailed", err)
	}
}

func TestNewEmptySecret(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("New with empty secret should fail")
	}
}
