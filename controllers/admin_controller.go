package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"sitecrew/gateway"
	"sitecrew/utils"
)

// AdminGateway is the provisioning slice of the identity gateway.
type AdminGateway interface {
	SignUpRaw(ctx context.Context, hdr http.Header, body []byte) (*gateway.Response, error)
}

// AdminController backs the shared-secret provisioning endpoint used by
// back-office tooling to create accounts without a browser session.
type AdminController struct {
	gw     AdminGateway
	secret string
	logger *log.Logger
}

func NewAdminController(gw AdminGateway, secret string, logger *log.Logger) *AdminController {
	return &AdminController{gw: gw, secret: secret, logger: logger}
}

type AdminUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image" validate:"omitempty,url"`
	RememberMe  *bool  `json:"rememberMe" validate:"omitempty"`
	CallbackURL string `json:"callbackURL" validate:"omitempty,url"`
}

// CreateUser validates the body and forwards it to the gateway's user
// creation call, relaying whatever the gateway returns.
func (ac *AdminController) CreateUser(c *fiber.Ctx) error {
	if ac.secret == "" {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Server misconfigured: missing ADMIN_API_SECRET")
	}

	if c.Get("X-Admin-Secret") != ac.secret {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req AdminUserRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	body, err := json.Marshal(gateway.SignUpInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Image:       req.Image,
		RememberMe:  req.RememberMe,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build gateway request")
	}

	resp, err := ac.gw.SignUpRaw(c.Context(), utils.ForwardedHeaders(c), body)
	if err != nil {
		ac.logger.Printf("admin user provisioning failed for %s: %v", req.Email, err)
		if gwErr, ok := err.(*gateway.Error); ok {
			return utils.ErrorResponse(c, gwErr.Status, gwErr.Message)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	relaySetCookies(c, resp.SetCookies)
	c.Set("Content-Type", "application/json")
	return c.Status(resp.Status).Send(resp.Body)
}
