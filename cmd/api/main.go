package main

import (
	_ "fnol_intake/docs"
	"fnol_intake/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           FNOL Claim Intake API
// @version         1.0
// @description     First Notice of Loss intake: claims, review desk and certificates of insurance.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@fnolpro.com

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
