package interfaces

import (
	"time"

	"fnol_intake/internal/domain/entities"
)

// ITokenIssuer signs and parses session tokens.
type ITokenIssuer interface {
	Issue(id entities.Identity) (token string, expiresAt time.Time, err error)
	Parse(token string) (entities.Identity, error)
}

// IPasswordHasher hashes and checks account passwords.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
