package actions

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"sitecrew/gateway"
	"sitecrew/utils"
)

type CreateOrganizationInput struct {
	Name string `json:"name" validate:"required,min=2,max=50,org_name"`
	Slug string `json:"slug" validate:"omitempty,min=2,max=50,org_slug"`
}

// CreateOrganization creates an organization through the identity gateway.
// When no slug is supplied it is derived from the name. Slug uniqueness is
// enforced upstream; a conflict surfaces as the normalized failure.
func (a *Actions) CreateOrganization(ctx context.Context, hdr http.Header, input CreateOrganizationInput) (*gateway.Organization, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	if _, err := a.requireSession(ctx, hdr); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	organization, err := a.gw.CreateOrganization(ctx, hdr, gateway.CreateOrganizationInput{
		Name: input.Name,
		Slug: slug,
	})
	if err != nil {
		reportUpstreamFailure("create_organization", err, logrus.Fields{"name": input.Name, "slug": slug})
		return nil, errors.New("Failed to create organization")
	}

	return organization, nil
}
