package usecase

import (
	"context"

	"fnol_intake/internal/domain/branding"
	"fnol_intake/internal/domain/certificate"
	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
	"fnol_intake/pkg/logger"
)

const certificateContentType = "text/html; charset=utf-8"

// Document is a generated file ready to be sent to the caller.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ICertificateUseCase interface {
	Generate(ctx context.Context, identity entities.Identity) (Document, error)
}

// CertificateUseCase issues certificates of insurance for the caller, branded
// after the insurer stored on their account. Nothing is persisted.
type CertificateUseCase struct {
	users interfaces.IUserRepository
	log   *logger.Logger
}

var _ ICertificateUseCase = (*CertificateUseCase)(nil)

func NewCertificateUseCase(users interfaces.IUserRepository) *CertificateUseCase {
	return &CertificateUseCase{
		users: users,
		log:   logger.Default().Component("certificate.usecase"),
	}
}

func (u *CertificateUseCase) Generate(ctx context.Context, identity entities.Identity) (Document, error) {
	if !identity.IsAuthenticated() {
		return Document{}, ErrUnauthorized
	}

	user, err := u.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return Document{}, err
	}
	if user.ID == "" {
		return Document{}, ErrUserNotFound
	}

	theme := branding.Resolve(user.InsuranceCompany)
	body, err := certificate.Render(certificate.Holder{Name: user.Name, Email: user.Email}, theme)
	if err != nil {
		return Document{}, err
	}

	u.log.Infof("certificate issued user_id=%s insurer=%q", user.ID, theme.Name)
	return Document{
		Filename:    "Certificate_" + theme.Name + ".html",
		ContentType: certificateContentType,
		Body:        body,
	}, nil
}
