package security

import (
	"errors"
	"fmt"
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 session tokens carrying the caller's identity.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ interfaces.ITokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) Issue(id entities.Identity) (string, time.Time, error) {
	now := j.now()
	exp := now.Add(j.ttl)
	claims := sessionClaims{
		Name:  id.Name,
		Email: id.Email,
		Role:  string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

func (j *JWTIssuer) Parse(token string) (entities.Identity, error) {
	var claims sessionClaims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}

	tok, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	})
	if err != nil || !tok.Valid {
		return entities.Identity{}, ErrInvalidToken
	}

	role := entities.Role(claims.Role)
	if claims.Subject == "" || (role != entities.RoleAdmin && role != entities.RoleClient) {
		return entities.Identity{}, ErrInvalidToken
	}
	return entities.Identity{UserID: claims.Subject, Name: claims.Name, Email: claims.Email, Role: role}, nil
}
