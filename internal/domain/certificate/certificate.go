// Package certificate renders the certificate-of-insurance document.
//
// Rendering is pure apart from the issue date and the provenance token. The
// token is cosmetic: it is not signed, cannot be verified and must not be
// treated as a security control.
package certificate

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"math/rand/v2"
	"strings"
	"time"

	"fnol_intake/internal/domain/branding"
)

var ErrInvalidInput = errors.New("certificate holder name and email are required")

const (
	tokenAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenGroupLen   = 8
	issueDateLayout = "January 2, 2006"
)

//go:embed certificate.html.tmpl
var rawTemplate string

var tmpl = template.Must(template.New("certificate").Parse(rawTemplate))

// Holder is the person the certificate is issued to.
type Holder struct {
	Name  string
	Email string
}

type view struct {
	HolderName     string
	HolderEmail    string
	InsurerName    string
	InsurerLogo    string
	PrimaryColor   template.CSS
	SecondaryColor template.CSS
	IssueDate      string
	Year           int
	Token          string
}

// Render builds a fresh certificate dated now with a new provenance token.
func Render(h Holder, theme branding.Theme) ([]byte, error) {
	return RenderAt(h, theme, time.Now(), NewToken())
}

// RenderAt is Render with the date and token supplied by the caller.
func RenderAt(h Holder, theme branding.Theme, issuedAt time.Time, token string) ([]byte, error) {
	if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.Email) == "" {
		return nil, ErrInvalidInput
	}

	// Colors only ever come from the fixed branding palette.
	v := view{
		HolderName:     h.Name,
		HolderEmail:    h.Email,
		InsurerName:    theme.Name,
		InsurerLogo:    strings.ToUpper(theme.Name),
		PrimaryColor:   template.CSS(theme.PrimaryColor),
		SecondaryColor: template.CSS(theme.SecondaryColor),
		IssueDate:      issuedAt.Format(issueDateLayout),
		Year:           issuedAt.Year(),
		Token:          token,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewToken returns a provenance token made of two 8-character uppercase
// alphanumeric groups, e.g. "K3J9QZ1A-0PLM2XC7".
func NewToken() string {
	return tokenGroup() + "-" + tokenGroup()
}

func tokenGroup() string {
	b := make([]byte, tokenGroupLen)
	for i := range b {
		b[i] = tokenAlphabet[rand.IntN(len(tokenAlphabet))]
	}
	return string(b)
}
