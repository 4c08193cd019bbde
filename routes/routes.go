package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"sitecrew/actions"
	"sitecrew/config"
	controller "sitecrew/controllers"
	"sitecrew/gateway"
	"sitecrew/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, gw *gateway.Client) {
	act := actions.New(gw, actions.NewInvitationStore(db), config.AppConfig.ResetCallbackURL)

	authController := controller.NewAuthController(gw, act, log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile))
	adminController := controller.NewAdminController(gw, config.AppConfig.AdminAPISecret, log.New(os.Stdout, "ADMIN: ", log.Ldate|log.Ltime|log.Lshortfile))
	orgController := controller.NewOrganizationController(act, log.New(os.Stdout, "ORG: ", log.LstdFlags))
	teamController := controller.NewTeamController(act, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	memberController := controller.NewMemberController(act, log.New(os.Stdout, "MEMBER: ", log.LstdFlags))

	// Public auth endpoints (no session required)
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	auth.Post("/sign-in", authController.SignIn)
	auth.Post("/sign-out", authController.SignOut)
	auth.Get("/me", authController.Me)

	// Administrative provisioning, gated by shared secret instead of session
	admin := app.Group("/admin", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	admin.Post("/users", adminController.CreateUser)

	// API group with versioning and session protection
	sessionCache := middleware.NewSessionCache(config.AppConfig.Redis, config.AppConfig.SessionCacheTTL)
	api := app.Group("/api/v1", middleware.Protected(gw, sessionCache), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	organizations := api.Group("/organizations")
	organizations.Post("/setup", orgController.Setup)
	organizations.Post("/", orgController.Create)
	organizations.Get("/:id/members", memberController.List)
	organizations.Post("/:id/members", memberController.Invite)
	organizations.Delete("/:id/members", memberController.Remove)
	organizations.Patch("/:id/members/role", memberController.UpdateRole)

	api.Post("/teams", teamController.Create)

	log.New(os.Stdout, "ROUTES: ", log.Ldate|log.Ltime).Println("Routes initialized successfully")
}
