package handlers

import (
	"net/http"

	"fnol_intake/internal/adapter/http/dto/request"
	"fnol_intake/internal/adapter/http/dto/response"
	"fnol_intake/internal/adapter/http/middleware"
	"fnol_intake/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the claims review desk.
type AdminHandler struct {
	usecase usecase.IClaimUseCase
}

func NewAdminHandler(uc usecase.IClaimUseCase) *AdminHandler {
	return &AdminHandler{usecase: uc}
}

// ListAllClaims
//
// @Summary      List every claim with its owner
// @Tags         admin
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.AdminClaimResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Router       /admin/claims [get]
func (h *AdminHandler) ListAllClaims(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	claims, err := h.usecase.ListAll(c.Request.Context(), identity)
	if err != nil {
		appErr := mapClaimError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClaimsWithOwner(claims))
}

// UpdateClaimStatus
//
// @Summary      Change a claim's status
// @Description  Any status may follow any other. Every call appends an activity entry.
// @Tags         admin
// @Accept       json
// @Security     Bearer
// @Param        id      path  string                            true  "Claim ID"
// @Param        status  body  request.UpdateClaimStatusRequest  true  "New status"
// @Success      204
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /admin/claims/{id}/status [patch]
func (h *AdminHandler) UpdateClaimStatus(c *gin.Context) {
	var payload request.UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	identity := middleware.IdentityFrom(c)
	err := h.usecase.UpdateStatus(c.Request.Context(), identity, c.Param("id"), payload.ResolveStatus(), payload.InternalNote)
	if err != nil {
		appErr := mapClaimError(err, identity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}
