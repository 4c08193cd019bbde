package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sitecrew/actions"
	"sitecrew/utils"
)

type OrganizationController struct {
	actions *actions.Actions
	logger  *log.Logger
}

func NewOrganizationController(act *actions.Actions, logger *log.Logger) *OrganizationController {
	return &OrganizationController{actions: act, logger: logger}
}

// Setup runs the full onboarding workflow: user, organization, first team,
// member invitations. The response carries either the aggregate result or a
// single terminal error.
func (oc *OrganizationController) Setup(c *fiber.Ctx) error {
	var input actions.SetupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	output, err := oc.actions.SetupOrganization(c.Context(), utils.ForwardedHeaders(c), input)
	if err != nil {
		oc.logger.Printf("organization setup failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(output))
}

// Create creates a single organization for the signed-in user.
func (oc *OrganizationController) Create(c *fiber.Ctx) error {
	var input actions.CreateOrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	organization, err := oc.actions.CreateOrganization(c.Context(), utils.ForwardedHeaders(c), input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(organization))
}
