package core

import "strings"

// HashedPassword carries an already-hashed password with its salt. It is a
// transparent pair; the hashing itself is done by a collaborator outside the
// domain (see internal/auth).
type HashedPassword struct {
	hash string
	salt string
}

// NewHashedPassword requires both components to be non-blank.
func NewHashedPassword(hash, salt string) (HashedPassword, error) {
	if strings.TrimSpace(hash) == "" {
		return HashedPassword{}, invalidf("password hash cannot be empty")
	}
	if strings.TrimSpace(salt) == "" {
		return HashedPassword{}, invalidf("password salt cannot be empty")
	}
	return HashedPassword{hash: hash, salt: salt}, nil
}

// Hash returns the hash component.
func (p HashedPassword) Hash() string { return p.hash }

// Salt returns the salt component.
func (p HashedPassword) Salt() string { return p.salt }

// IsZero reports whether no password was provided.
func (p HashedPassword) IsZero() bool { return p.hash == "" && p.salt == "" }
