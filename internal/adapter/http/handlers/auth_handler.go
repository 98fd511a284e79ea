package handlers

import (
	"errors"
	"net/http"
	"time"

	"fnol_intake/internal/adapter/http/dto/request"
	"fnol_intake/internal/adapter/http/dto/response"
	"fnol_intake/internal/adapter/http/middleware"
	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase"
	"fnol_intake/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidAuthPayload = pkg.NewDomainErrorSimple("INVALID_AUTH_INPUT", "Invalid payload", http.StatusBadRequest)

type AuthHandler struct {
	usecase      usecase.IAuthUseCase
	secureCookie bool
}

func NewAuthHandler(uc usecase.IAuthUseCase, secureCookie bool) *AuthHandler {
	return &AuthHandler{usecase: uc, secureCookie: secureCookie}
}

// Register
//
// @Summary      Create a client account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account  body      request.RegisterRequest  true  "Account"
// @Success      201      {object}  response.UserResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.Register(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapAuthError(err, entities.Identity{})
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromUser(user))
}

// Login
//
// @Summary      Log in
// @Description  Returns a bearer token and also sets it as the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      request.LoginRequest  true  "Credentials"
// @Success      200          {object}  response.LoginResponse
// @Failure      401          {object}  pkg.HTTPError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	session, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		appErr := mapAuthError(err, entities.Identity{})
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, maxAge, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, response.FromSession(session))
}

// Logout
//
// @Summary  Clear the session cookie
// @Tags     auth
// @Success  204
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.Status(http.StatusNoContent)
}

// Me
//
// @Summary   Current account
// @Tags      auth
// @Produce   json
// @Security  Bearer
// @Success   200  {object}  response.UserResponse
// @Failure   401  {object}  pkg.HTTPError
// @Router    /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	user, err := h.usecase.Me(c.Request.Context(), identity)
	if err != nil {
		appErr := mapAuthError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

// UpdateInsuranceCompany
//
// @Summary      Set the insurer used to brand certificates
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        company  body      request.UpdateInsuranceCompanyRequest  true  "Insurer"
// @Success      200      {object}  response.UserResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      401      {object}  pkg.HTTPError
// @Router       /me/insurance-company [patch]
func (h *AuthHandler) UpdateInsuranceCompany(c *gin.Context) {
	var payload request.UpdateInsuranceCompanyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	identity := middleware.IdentityFrom(c)
	user, err := h.usecase.UpdateInsuranceCompany(c.Request.Context(), identity, payload.InsuranceCompany)
	if err != nil {
		appErr := mapAuthError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

func mapAuthError(err error, identity entities.Identity) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewValidationError(verr.Fields)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_EXISTS", "Email already registered", http.StatusConflict)
	case errors.Is(err, usecase.ErrUnauthorized):
		return unauthorizedFor(identity)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
