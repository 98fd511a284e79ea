package handlers

import (
	"errors"
	"mime"
	"net/http"

	"fnol_intake/internal/adapter/http/middleware"
	"fnol_intake/internal/domain/certificate"
	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase"
	"fnol_intake/pkg"

	"github.com/gin-gonic/gin"
)

type CertificateHandler struct {
	usecase usecase.ICertificateUseCase
}

func NewCertificateHandler(uc usecase.ICertificateUseCase) *CertificateHandler {
	return &CertificateHandler{usecase: uc}
}

// DownloadCertificate returns a freshly rendered certificate of insurance as
// an HTML attachment. Nothing is stored.
//
// @Summary      Download certificate of insurance
// @Tags         certificate
// @Produce      html
// @Security     Bearer
// @Success      200  {file}    file
// @Failure      401  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /certificate [get]
func (h *CertificateHandler) DownloadCertificate(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	doc, err := h.usecase.Generate(c.Request.Context(), identity)
	if err != nil {
		appErr := mapCertificateError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func mapCertificateError(err error, identity entities.Identity) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return unauthorizedFor(identity)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, certificate.ErrInvalidInput):
		return pkg.NewDomainErrorSimple("INVALID_PROFILE", "Your profile needs a name and email before a certificate can be issued", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
