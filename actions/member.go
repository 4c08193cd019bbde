package actions

import (
	"context"
	"errors"
	"net/http"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"

	"sitecrew/gateway"
	"sitecrew/models"
	"sitecrew/utils"
)

type InviteMemberInput struct {
	Email          string `json:"email" validate:"required,email"`
	Role           string `json:"role" validate:"required,oneof=admin owner member"`
	OrganizationID string `json:"organizationId" validate:"required"`
	TeamID         string `json:"teamId" validate:"omitempty"`
}

type AddMemberInput struct {
	UserID         string `json:"userId" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=admin owner member"`
	OrganizationID string `json:"organizationId" validate:"required"`
	TeamID         string `json:"teamId" validate:"omitempty"`
}

type UpdateMemberRoleInput struct {
	MemberID       string `json:"memberId" validate:"required"`
	OrganizationID string `json:"organizationId" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=admin owner member"`
}

// InviteMember records an invitation for a prospective member. The row is a
// local placeholder for a future messaging integration; no delivery guarantee
// is made, and membership itself only materializes upstream once the invitee
// signs up.
func (a *Actions) InviteMember(ctx context.Context, hdr http.Header, input InviteMemberInput) (*models.Invitation, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := checkmail.ValidateFormat(input.Email); err != nil {
		return nil, errors.New("email must be a valid email")
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return nil, err
	}

	invitation := &models.Invitation{
		Email:          input.Email,
		Role:           input.Role,
		OrganizationID: input.OrganizationID,
		TeamID:         input.TeamID,
		Status:         models.InvitationStatusInvited,
	}
	if err := a.invitations.Create(invitation); err != nil {
		logrus.WithFields(logrus.Fields{
			"email":           input.Email,
			"organization_id": input.OrganizationID,
		}).WithError(err).Error("failed to record invitation")
		return nil, errors.New("Failed to invite member")
	}

	return invitation, nil
}

// AddMember attaches an existing user to an organization.
func (a *Actions) AddMember(ctx context.Context, hdr http.Header, input AddMemberInput) (*gateway.Member, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return nil, err
	}

	member, err := a.gw.AddMember(ctx, hdr, gateway.AddMemberInput{
		UserID:         input.UserID,
		Role:           []string{input.Role},
		OrganizationID: input.OrganizationID,
		TeamID:         input.TeamID,
	})
	if err != nil {
		reportUpstreamFailure("add_member", err, logrus.Fields{
			"user_id":         input.UserID,
			"organization_id": input.OrganizationID,
		})
		return nil, errors.New("Failed to add member")
	}

	return member, nil
}

// ListMembers returns the organization's members from the gateway.
func (a *Actions) ListMembers(ctx context.Context, hdr http.Header, organizationID string) ([]gateway.Member, error) {
	if organizationID == "" {
		return nil, errors.New("organizationid is required")
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return nil, err
	}

	members, err := a.gw.ListMembers(ctx, hdr, organizationID)
	if err != nil {
		reportUpstreamFailure("list_members", err, logrus.Fields{"organization_id": organizationID})
		return nil, errors.New("Failed to get members")
	}
	if members == nil {
		members = []gateway.Member{}
	}

	return members, nil
}

// RemoveMember detaches a member (by id or email) from an organization.
func (a *Actions) RemoveMember(ctx context.Context, hdr http.Header, memberIDOrEmail, organizationID string) error {
	if memberIDOrEmail == "" || organizationID == "" {
		return errors.New("member and organizationid are required")
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return err
	}

	if err := a.gw.RemoveMember(ctx, hdr, gateway.RemoveMemberInput{
		MemberIDOrEmail: memberIDOrEmail,
		OrganizationID:  organizationID,
	}); err != nil {
		reportUpstreamFailure("remove_member", err, logrus.Fields{
			"member":          memberIDOrEmail,
			"organization_id": organizationID,
		})
		return errors.New("Failed to remove member")
	}

	return nil
}

// UpdateMemberRole changes a member's role within an organization.
func (a *Actions) UpdateMemberRole(ctx context.Context, hdr http.Header, input UpdateMemberRoleInput) (*gateway.Member, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return nil, err
	}

	member, err := a.gw.UpdateMemberRole(ctx, hdr, gateway.UpdateMemberRoleInput{
		MemberID:       input.MemberID,
		OrganizationID: input.OrganizationID,
		Role:           []string{input.Role},
	})
	if err != nil {
		reportUpstreamFailure("update_member_role", err, logrus.Fields{
			"member_id":       input.MemberID,
			"organization_id": input.OrganizationID,
		})
		return nil, errors.New("Failed to update member role")
	}

	return member, nil
}
