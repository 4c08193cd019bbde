package actions

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"sitecrew/gateway"
	"sitecrew/utils"
)

type CreateTeamInput struct {
	Name           string `json:"name" validate:"required,min=2,max=50,org_name"`
	OrganizationID string `json:"organizationId" validate:"required"`
}

// CreateTeam creates a team bound to an existing organization.
func (a *Actions) CreateTeam(ctx context.Context, hdr http.Header, input CreateTeamInput) (*gateway.Team, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return nil, err
	}

	team, err := a.gw.CreateTeam(ctx, hdr, gateway.CreateTeamInput{
		Name:           input.Name,
		OrganizationID: input.OrganizationID,
	})
	if err != nil {
		reportUpstreamFailure("create_team", err, logrus.Fields{
			"name":            input.Name,
			"organization_id": input.OrganizationID,
		})
		return nil, errors.New("Failed to create team")
	}

	return team, nil
}
