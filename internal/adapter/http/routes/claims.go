package routes

import (
	"fnol_intake/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth        = "/auth"
	PathClaims      = "/claims"
	PathCertificate = "/certificate"
	PathMe          = "/me"
	PathAdmin       = "/admin"
)

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// addClaimRoutes expects rg to already require an authenticated caller.
func addClaimRoutes(rg *gin.RouterGroup, claims *handlers.ClaimHandler, certs *handlers.CertificateHandler, auth *handlers.AuthHandler) {
	c := rg.Group(PathClaims)
	{
		c.POST("", claims.CreateClaim)
		c.GET("", claims.ListMyClaims)
		c.GET("/:id", claims.GetClaim)
	}

	rg.GET(PathCertificate, certs.DownloadCertificate)
	rg.PATCH(PathMe+"/insurance-company", auth.UpdateInsuranceCompany)
}

func addAdminRoutes(rg *gin.RouterGroup, h *handlers.AdminHandler) {
	c := rg.Group(PathClaims)
	{
		c.GET("", h.ListAllClaims)
		c.PATCH("/:id/status", h.UpdateClaimStatus)
	}
}
