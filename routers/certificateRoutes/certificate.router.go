package certificateRoutes

import (
	certificateController "aimwell/controllers/certificate"
	"aimwell/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate routes. Verification is
// public so third parties can resolve codes without an account.
func SetupCertificateRoutes(app *fiber.App, cc *certificateController.CertificateController) {
	certGroup := app.Group("/certificate")

	certGroup.Get("/list", middleware.JWTMiddleware, cc.GetUserCertificates)
	certGroup.Post("/:id/generate", middleware.JWTMiddleware, cc.GeneratePDF)
	certGroup.Post("/upload", middleware.JWTMiddleware, cc.UploadProof)

	app.Get("/verify-certificate/:code", cc.VerifyCertificate)
}
