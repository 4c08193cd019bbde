package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sitecrew/actions"
	"sitecrew/utils"
)

type MemberController struct {
	actions *actions.Actions
	logger  *log.Logger
}

func NewMemberController(act *actions.Actions, logger *log.Logger) *MemberController {
	return &MemberController{actions: act, logger: logger}
}

// Invite records an invitation for a prospective organization member.
func (mc *MemberController) Invite(c *fiber.Ctx) error {
	var input actions.InviteMemberInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.OrganizationID = c.Params("id")

	invitation, err := mc.actions.InviteMember(c.Context(), utils.ForwardedHeaders(c), input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(invitation))
}

// List returns the organization's members.
func (mc *MemberController) List(c *fiber.Ctx) error {
	members, err := mc.actions.ListMembers(c.Context(), utils.ForwardedHeaders(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(utils.SuccessResponse(members))
}

type RemoveMemberRequest struct {
	Member string `json:"member" validate:"required"`
}

// Remove detaches a member, addressed by member id or email.
func (mc *MemberController) Remove(c *fiber.Ctx) error {
	var req RemoveMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	if err := mc.actions.RemoveMember(c.Context(), utils.ForwardedHeaders(c), req.Member, c.Params("id")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"removed": true}))
}

// UpdateRole changes a member's organization role.
func (mc *MemberController) UpdateRole(c *fiber.Ctx) error {
	var input actions.UpdateMemberRoleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.OrganizationID = c.Params("id")

	member, err := mc.actions.UpdateMemberRole(c.Context(), utils.ForwardedHeaders(c), input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(utils.SuccessResponse(member))
}
