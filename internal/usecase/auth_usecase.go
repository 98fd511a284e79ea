package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"fnol_intake/internal/domain/branding"
	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
	"fnol_intake/pkg/logger"

	"github.com/google/uuid"
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      entities.User
}

type IAuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (entities.User, error)
	Login(ctx context.Context, email, password string) (Session, error)
	Authenticate(token string) (entities.Identity, error)
	Me(ctx context.Context, identity entities.Identity) (entities.User, error)
	UpdateInsuranceCompany(ctx context.Context, identity entities.Identity, company string) (entities.User, error)
	EnsureUser(ctx context.Context, in RegisterInput, role entities.Role, company string) (entities.User, bool, error)
}

type AuthUseCase struct {
	users  interfaces.IUserRepository
	hasher interfaces.IPasswordHasher
	tokens interfaces.ITokenIssuer
	log    *logger.Logger

	now       func() time.Time
	pickBrand func() string
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, hasher interfaces.IPasswordHasher, tokens interfaces.ITokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		log:       logger.Default().Component("auth.usecase"),
		now:       time.Now,
		pickBrand: randomBrand,
	}
}

func randomBrand() string {
	b := branding.Brands()
	return b[rand.IntN(len(b))]
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a CLIENT account assigned to a random named insurer.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (entities.User, error) {
	return u.createUser(ctx, in, entities.RoleClient, u.pickBrand())
}

func (u *AuthUseCase) createUser(ctx context.Context, in RegisterInput, role entities.Role, company string) (entities.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return entities.User{}, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Email:            in.Email,
		PasswordHash:     hash,
		Role:             role,
		InsuranceCompany: strings.ToUpper(strings.TrimSpace(company)),
		CreatedAt:        u.now().UTC(),
	}
	created, err := u.users.Create(ctx, user)
	if errors.Is(err, interfaces.ErrEmailTaken) {
		return entities.User{}, ErrEmailAlreadyExists
	}
	if err != nil {
		return entities.User{}, err
	}

	u.log.Infof("user registered user_id=%s role=%s", created.ID, created.Role)
	return created, nil
}

// Login checks the credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if user.ID == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		u.log.Warnf("login rejected user_id=%s", user.ID)
		return Session{}, ErrInvalidCredentials
	}

	token, exp, err := u.tokens.Issue(user.Identity())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: user}, nil
}

func (u *AuthUseCase) Authenticate(token string) (entities.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Identity{}, ErrUnauthorized
	}
	id, err := u.tokens.Parse(token)
	if err != nil || !id.IsAuthenticated() {
		return entities.Identity{}, ErrUnauthorized
	}
	return id, nil
}

func (u *AuthUseCase) Me(ctx context.Context, identity entities.Identity) (entities.User, error) {
	if !identity.IsAuthenticated() {
		return entities.User{}, ErrUnauthorized
	}
	user, err := u.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdateInsuranceCompany stores the caller's insurer, uppercased. Any text is
// accepted; unknown insurers get generic certificate branding.
func (u *AuthUseCase) UpdateInsuranceCompany(ctx context.Context, identity entities.Identity, company string) (entities.User, error) {
	if !identity.IsAuthenticated() {
		return entities.User{}, ErrUnauthorized
	}
	company = strings.ToUpper(strings.TrimSpace(company))
	if company == "" {
		return entities.User{}, newFieldError("insurance_company", "is required")
	}

	user, err := u.users.UpdateInsuranceCompany(ctx, identity.UserID, company)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

// EnsureUser returns the account for in.Email, creating it when missing.
// The boolean reports whether a new account was created.
func (u *AuthUseCase) EnsureUser(ctx context.Context, in RegisterInput, role entities.Role, company string) (entities.User, bool, error) {
	existing, err := u.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return entities.User{}, false, err
	}
	if existing.ID != "" {
		return existing, false, nil
	}

	created, err := u.createUser(ctx, in, role, company)
	if errors.Is(err, ErrEmailAlreadyExists) {
		existing, err = u.users.GetByEmail(ctx, normalizeEmail(in.Email))
		return existing, false, err
	}
	if err != nil {
		return entities.User{}, false, err
	}
	return created, true, nil
}
