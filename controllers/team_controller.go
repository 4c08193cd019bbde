package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sitecrew/actions"
	"sitecrew/utils"
)

type TeamController struct {
	actions *actions.Actions
	logger  *log.Logger
}

func NewTeamController(act *actions.Actions, logger *log.Logger) *TeamController {
	return &TeamController{actions: act, logger: logger}
}

// Create creates a team inside an existing organization.
func (tc *TeamController) Create(c *fiber.Ctx) error {
	var input actions.CreateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	team, err := tc.actions.CreateTeam(c.Context(), utils.ForwardedHeaders(c), input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(team))
}
