package core

import (
	"errors"
	"testing"
)

func TestNewHashedPassword(t *testing.T) {
	cases := []struct {
		name string
		hash string
		salt string
		ok   bool
	}{
		{"both present", "deadbeef", "cafe", true},
		{"empty hash", "", "cafe", false},
		{"blank hash", "   ", "cafe", false},
		{"empty salt", "deadbeef", "", false},
		{"blank salt", "deadbeef", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewHashedPassword(tc.hash, tc.salt)
			if !tc.ok {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Hash() != tc.hash || p.Salt() != tc.salt {
				t.Fatalf("components not carried through: %q %q", p.Hash(), p.Salt())
			}
		})
	}
}

func TestHashedPasswordValueEquality(t *testing.T) {
	a, _ := NewHashedPassword("h", "s")
	b, _ := NewHashedPassword("h", "s")
	if a != b {
		t.Fatal("expected value equality on hash+salt")
	}
	c, _ := NewHashedPassword("h", "other")
	if a == c {
		t.Fatal("different salts must not compare equal")
	}
}
