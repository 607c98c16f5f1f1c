package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSHA256HasherIsDeterministic(t *testing.T) {
	h := SHA256Hasher{}

	a, _ := h.Hash("pw1")
	b, _ := h.Hash("pw1")
	if a != b {
		t.Fatalf("expected identical digests, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a != "c592df4a86933b92addc9842402ddf198c638ea9be58916ee6e3734e1e3152f8" {
		t.Errorf("unexpected digest %q", a)
	}
	if !h.Check("pw1", a) {
		t.Error("digest does not verify")
	}
	if h.Check("pw2", a) {
		t.Error("different password must not verify")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	a, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	b, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if a == b {
		t.Error("bcrypt digests should be salted")
	}
	if strings.Contains(a, "pw1") {
		t.Error("digest must not contain the plaintext")
	}
	if !h.Check("pw1", a) || !h.Check("pw1", b) {
		t.Error("expected both digests to verify")
	}
	if h.Check("wrong", a) {
		t.Error("wrong password must not verify")
	}
}

func TestBcryptHasherLongPasswords(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	long := strings.Repeat("p", 100)

	digest, err := h.Hash(long)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !h.Check(long, digest) {
		t.Error("expected long password to verify")
	}
	// Passwords sharing the first 72 bytes must still be told apart.
	if h.Check(strings.Repeat("p", 72)+"q", digest) {
		t.Error("different long password must not verify")
	}
}

func TestBcryptHasherAcceptsLegacyDigests(t *testing.T) {
	legacy, _ := SHA256Hasher{}.Hash("pw1")
	h := NewBcrypt(bcrypt.MinCost)

	if !h.Check("pw1", legacy) {
		t.Error("expected legacy digest to verify")
	}
	if h.Check("pw2", legacy) {
		t.Error("wrong password must not verify against legacy digest")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
	}{
		{scheme: "bcrypt"},
		{scheme: ""},
		{scheme: "SHA256"},
		{scheme: "md5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			h, err := New(tt.scheme, bcrypt.MinCost)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.scheme, err, tt.wantErr)
			}
			if !tt.wantErr && h == nil {
				t.Fatal("expected a hasher")
			}
		})
	}
}
