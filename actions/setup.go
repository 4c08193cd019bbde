package actions

import (
	"context"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"sitecrew/gateway"
	"sitecrew/models"
	"sitecrew/utils"
)

type SetupUserInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type SetupOrganizationInput struct {
	Name string `json:"name" validate:"required,min=2,max=50,org_name"`
	Slug string `json:"slug" validate:"omitempty,min=2,max=50,org_slug"`
}

type SetupTeamInput struct {
	Name string `json:"name" validate:"required,min=2,max=50,org_name"`
}

type SetupMemberInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin owner member"`
}

type SetupInput struct {
	User         SetupUserInput         `json:"user"`
	Organization SetupOrganizationInput `json:"organization"`
	Team         SetupTeamInput         `json:"team"`
	Members      []SetupMemberInput     `json:"members" validate:"required,min=1,max=20,dive"`
}

type SetupOutput struct {
	User         *gateway.User         `json:"user"`
	Organization *gateway.Organization `json:"organization"`
	Team         *gateway.Team         `json:"team"`
	Invitations  []*models.Invitation  `json:"invitations"`
}

// SetupOrganization runs the onboarding workflow as one strictly ordered
// sequence: validate the whole input, create the user with a generated
// credential, create the organization, create its first team, then invite
// each member in input order.
//
// There is no rollback: a failure at any stage stops the sequence and leaves
// everything already created in place. Individual invitation failures are
// logged and dropped from the result; they never fail the workflow.
func (a *Actions) SetupOrganization(ctx context.Context, hdr http.Header, input SetupInput) (*SetupOutput, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	// The generated credential exists only for the gateway call. The reset
	// callback lets the provider send the new user a password-reset email.
	password, err := utils.GeneratePassword()
	if err != nil {
		return nil, err
	}

	user, err := a.CreateUser(ctx, hdr, CreateUserInput{
		Name:        input.User.Name,
		Email:       input.User.Email,
		Password:    password,
		CallbackURL: a.resetCallbackURL,
	})
	if err != nil {
		return nil, err
	}

	organization, err := a.CreateOrganization(ctx, hdr, CreateOrganizationInput{
		Name: input.Organization.Name,
		Slug: input.Organization.Slug,
	})
	if err != nil {
		return nil, err
	}

	team, err := a.CreateTeam(ctx, hdr, CreateTeamInput{
		Name:           input.Team.Name,
		OrganizationID: organization.ID,
	})
	if err != nil {
		return nil, err
	}

	invitations := make([]*models.Invitation, 0, len(input.Members))
	for _, member := range input.Members {
		invitation, err := a.InviteMember(ctx, hdr, InviteMemberInput{
			Email:          member.Email,
			Role:           member.Role,
			OrganizationID: organization.ID,
			TeamID:         team.ID,
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email":           member.Email,
				"organization_id": organization.ID,
			}).WithError(err).Warn("failed to invite member during setup")
			sentry.AddBreadcrumb(&sentry.Breadcrumb{
				Category: "organization_setup",
				Message:  "invitation failed for " + member.Email,
				Level:    sentry.LevelWarning,
			})
			continue
		}
		invitations = append(invitations, invitation)
	}

	return &SetupOutput{
		User:         user,
		Organization: organization,
		Team:         team,
		Invitations:  invitations,
	}, nil
}
