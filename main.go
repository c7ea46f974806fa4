package main

import (
	"log"

	"aimwell/config"
	adminController "aimwell/controllers/admin"
	aiController "aimwell/controllers/ai"
	authController "aimwell/controllers/auth"
	certificateController "aimwell/controllers/certificate"
	communityController "aimwell/controllers/community"
	courseController "aimwell/controllers/course"
	paymentController "aimwell/controllers/payment"
	subscriptionController "aimwell/controllers/subscription"
	supportController "aimwell/controllers/support"
	"aimwell/database"
	"aimwell/middleware"
	adminRoutes "aimwell/routers/adminRoutes"
	aiRoutes "aimwell/routers/aiRoutes"
	authRoutes "aimwell/routers/authRoutes"
	certificateRoutes "aimwell/routers/certificateRoutes"
	communityRoutes "aimwell/routers/communityRoutes"
	courseRoutes "aimwell/routers/courseRoutes"
	paymentRoutes "aimwell/routers/paymentRoutes"
	subscriptionRoutes "aimwell/routers/subscriptionRoutes"
	supportRoutes "aimwell/routers/supportRoutes"
	"aimwell/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	db := database.Connect()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded certificates and proofs
	app.Static(config.AppConfig.StorageBaseURL, config.AppConfig.StorageRoot)

	mailer := utils.NewMailer(config.AppConfig.SendgridKey, config.AppConfig.EmailSender)
	store := utils.NewFileStore(config.AppConfig.StorageRoot, config.AppConfig.StorageBaseURL)
	roles := middleware.NewRoleChecker(db)

	mpesa, err := utils.NewDarajaClient(
		config.AppConfig.MpesaBaseURL,
		config.AppConfig.MpesaConsumerKey,
		config.AppConfig.MpesaConsumerSecret,
		config.AppConfig.MpesaShortCode,
		config.AppConfig.MpesaPasskey,
		config.AppConfig.MpesaCallbackURL,
	)
	if err != nil {
		log.Printf("M-Pesa client disabled: %v", err)
	}

	ai := utils.NewAIClient(config.AppConfig.AIBaseURL, config.AppConfig.AIAPIKey, config.AppConfig.AIModel)

	authRoutes.SetupAuthRoutes(app, authController.NewAuthController(db))
	paymentRoutes.SetupPaymentRoutes(app, paymentController.NewPaymentController(db, mpesa))
	courseRoutes.SetupCourseRoutes(app, courseController.NewCourseController(db, mailer))
	courseRoutes.SetupAdminCourseRoutes(app, courseController.NewAdminCourseController(db), roles)
	certificateRoutes.SetupCertificateRoutes(app, certificateController.NewCertificateController(db, store, mailer))
	aiRoutes.SetupAIRoutes(app, aiController.NewAIController(db, ai))
	adminRoutes.SetupAdminRoutes(app, adminController.NewRoleController(db, roles), roles)
	communityRoutes.SetupCommunityRoutes(app, communityController.NewCommunityController(db, roles))
	supportRoutes.SetupSupportRoutes(app, supportController.NewSupportController(db), roles)
	subscriptionRoutes.SetupSubscriptionRoutes(app, subscriptionController.NewSubscriptionController(db))

	utils.InitializeSchedulers(db, mailer)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
