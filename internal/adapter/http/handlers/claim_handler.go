package handlers

import (
	"errors"
	"net/http"

	"fnol_intake/internal/adapter/http/dto/request"
	"fnol_intake/internal/adapter/http/dto/response"
	"fnol_intake/internal/adapter/http/middleware"
	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase"
	"fnol_intake/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidClaimPayload  = pkg.NewDomainErrorSimple("INVALID_CLAIM_INPUT", "Invalid claim payload", http.StatusBadRequest)
	errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS_INPUT", "Invalid status payload", http.StatusBadRequest)
)

// ClaimHandler serves the policyholder side of the claim lifecycle.
type ClaimHandler struct {
	usecase usecase.IClaimUseCase
}

func NewClaimHandler(uc usecase.IClaimUseCase) *ClaimHandler {
	return &ClaimHandler{usecase: uc}
}

// CreateClaim registers a First Notice of Loss.
//
// @Summary      Submit a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        claim  body      request.CreateClaimRequest  true  "Claim"
// @Success      201    {object}  response.ClaimResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      401    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Router       /claims [post]
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var payload request.CreateClaimRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidClaimPayload.HTTPStatus, errInvalidClaimPayload.ToHTTPError())
		return
	}

	identity := middleware.IdentityFrom(c)
	claim, err := h.usecase.Create(c.Request.Context(), identity, payload.ToInput())
	if err != nil {
		appErr := mapClaimError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromClaim(claim))
}

// ListMyClaims returns the caller's claims, newest first.
//
// @Summary      List my claims
// @Tags         claims
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.ClaimResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /claims [get]
func (h *ClaimHandler) ListMyClaims(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	claims, err := h.usecase.ListForUser(c.Request.Context(), identity)
	if err != nil {
		appErr := mapClaimError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClaims(claims))
}

// GetClaim returns one claim with its activity log.
//
// @Summary      Get a claim
// @Tags         claims
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Claim ID"
// @Success      200  {object}  response.ClaimDetailResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /claims/{id} [get]
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	detail, err := h.usecase.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		appErr := mapClaimError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClaimDetail(detail))
}

func mapClaimError(err error, identity entities.Identity) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewValidationError(verr.Fields)
	case errors.Is(err, usecase.ErrUnauthorized):
		return unauthorizedFor(identity)
	case errors.Is(err, usecase.ErrClaimNotFound):
		return pkg.NewDomainErrorSimple("CLAIM_NOT_FOUND", "Claim not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClaimNumberConflict):
		return pkg.NewDomainErrorSimple("CLAIM_NUMBER_CONFLICT", "Could not allocate a claim number, please retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// unauthorizedFor distinguishes a missing session (401) from a session that
// lacks the required role (403).
func unauthorizedFor(identity entities.Identity) *pkg.AppError {
	if identity.IsAuthenticated() {
		return pkg.NewDomainErrorSimple("FORBIDDEN", "You are not allowed to perform this action", http.StatusForbidden)
	}
	return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
}
