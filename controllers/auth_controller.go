package controller

import (
	"context"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"sitecrew/actions"
	"sitecrew/gateway"
	"sitecrew/utils"
)

// AuthGateway is the slice of the identity gateway the auth surface proxies.
type AuthGateway interface {
	SignInRaw(ctx context.Context, hdr http.Header, body []byte) (*gateway.Response, error)
	SignOut(ctx context.Context, hdr http.Header) error
}

type AuthController struct {
	gw      AuthGateway
	actions *actions.Actions
	logger  *log.Logger
}

func NewAuthController(gw AuthGateway, act *actions.Actions, logger *log.Logger) *AuthController {
	return &AuthController{gw: gw, actions: act, logger: logger}
}

type SignInRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe *bool  `json:"rememberMe" validate:"omitempty"`
}

// SignIn proxies email/password sign-in to the identity gateway and relays
// its response verbatim, session cookie included.
func (ac *AuthController) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ac.gw.SignInRaw(c.Context(), utils.ForwardedHeaders(c), c.Body())
	if err != nil {
		ac.logger.Printf("sign-in failed for %s: %v", req.Email, err)
		if gwErr, ok := err.(*gateway.Error); ok {
			return utils.ErrorResponse(c, gwErr.Status, gwErr.Message)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to sign in")
	}

	relaySetCookies(c, resp.SetCookies)
	c.Set("Content-Type", "application/json")
	return c.Status(resp.Status).Send(resp.Body)
}

// SignOut destroys the caller's gateway session.
func (ac *AuthController) SignOut(c *fiber.Ctx) error {
	if err := ac.gw.SignOut(c.Context(), utils.ForwardedHeaders(c)); err != nil {
		ac.logger.Printf("sign-out failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to sign out")
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"signedOut": true}))
}

// Me returns the user bound to the current session.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, err := ac.actions.CurrentUser(c.Context(), utils.ForwardedHeaders(c))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())
	}
	return c.JSON(utils.SuccessResponse(user))
}

func relaySetCookies(c *fiber.Ctx, cookies []string) {
	for _, cookie := range cookies {
		c.Response().Header.Add("Set-Cookie", cookie)
	}
}
