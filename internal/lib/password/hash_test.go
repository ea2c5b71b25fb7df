package password

import (
	"errors"
	"testing"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "regular password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
			wantErr:  false,
		},
		{
			name:     "long password",
			password: "verylongpasswordwithmorethanfiftycharacters1",
			wantErr:  false,
		},
		{
			name:     "short password",
			password: "short",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("GetHash() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && gotHash == "" {
				t.Error("GetHash() returned empty hash")
			}

			if !tt.wantErr && gotHash == tt.password {
				t.Error("GetHash() returned the plaintext password")
			}

			if !tt.wantErr {
				ok, err := CompareHash(gotHash, tt.password)
				if err != nil {
					t.Errorf("Generated hash doesn't work with original password: %v", err)
				}
				if !ok {
					t.Error("CompareHash() = false for the original password")
				}
			}
		})
	}
}

func TestCompareHash(t *testing.T) {
	correctHash, err := GetHash("correct_password1")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	anotherHash, err := GetHash("another_password1")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{
			name:        "matching password",
			hash:        correctHash,
			password:    "correct_password1",
			shouldMatch: true,
		},
		{
			name:        "wrong password",
			hash:        correctHash,
			password:    "wrong_password1",
			shouldMatch: false,
		},
		{
			name:        "different hash same password",
			hash:        anotherHash,
			password:    "correct_password1",
			shouldMatch: false,
		},
		{
			name:        "empty password",
			hash:        correctHash,
			password:    "",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CompareHash(tt.hash, tt.password)
			if err != nil {
				t.Fatalf("CompareHash() unexpected error: %v", err)
			}
			if ok != tt.shouldMatch {
				t.Errorf("CompareHash() = %v, want %v", ok, tt.shouldMatch)
			}
		})
	}
}

func TestCompareHash_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{
			name: "empty hash",
			hash: "",
		},
		{
			name: "garbage hash",
			hash: "not-a-bcrypt-hash",
		},
		{
			name: "truncated hash",
			hash: "$2a$10$tooshort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CompareHash(tt.hash, "whatever_password1")
			if ok {
				t.Error("CompareHash() = true for malformed hash")
			}
			if !errors.Is(err, models.ErrMalformedHash) {
				t.Errorf("CompareHash() error = %v, want models.ErrMalformedHash", err)
			}
		})
	}
}

func TestGetHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := GetHash("password123")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	hash2, err := GetHash("password123")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Same password produced identical hashes, salt is not random")
	}

	for _, h := range []string{hash1, hash2} {
		ok, err := CompareHash(h, "password123")
		if err != nil || !ok {
			t.Errorf("Hash %q does not verify against the original password", h)
		}
	}
}
