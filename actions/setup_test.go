package actions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecrew/models"
	"sitecrew/utils"
)

func validSetupInput() SetupInput {
	return SetupInput{
		User: SetupUserInput{
			Name:  "Pat Builder",
			Email: "pat@acme.test",
		},
		Organization: SetupOrganizationInput{
			Name: "Acme Construction",
		},
		Team: SetupTeamInput{
			Name: "Site Crew",
		},
		Members: []SetupMemberInput{
			{Email: "pm@acme.test", Role: models.RoleAdmin},
			{Email: "foreman@acme.test", Role: models.RoleMember},
			{Email: "owner2@acme.test", Role: models.RoleOwner},
		},
	}
}

func TestSetupOrganizationSuccess(t *testing.T) {
	gw := &fakeGateway{session: activeSession()}
	store := &fakeInvitationStore{}
	act := newTestActions(gw, store)

	output, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.NoError(t, err)

	require.NotNil(t, output.User)
	assert.Equal(t, "pat@acme.test", output.User.Email)
	require.NotNil(t, output.Organization)
	assert.Equal(t, "acme-construction", output.Organization.Slug)
	require.NotNil(t, output.Team)
	assert.Equal(t, "org-1", output.Team.OrganizationID)
	assert.Len(t, output.Invitations, 3)

	// Invitations keep input order and bind to the new org and team
	assert.Equal(t, "pm@acme.test", output.Invitations[0].Email)
	assert.Equal(t, "foreman@acme.test", output.Invitations[1].Email)
	assert.Equal(t, "owner2@acme.test", output.Invitations[2].Email)
	for _, invitation := range output.Invitations {
		assert.Equal(t, "org-1", invitation.OrganizationID)
		assert.Equal(t, "team-1", invitation.TeamID)
		assert.Equal(t, models.InvitationStatusInvited, invitation.Status)
	}
}

func TestSetupOrganizationStageOrder(t *testing.T) {
	gw := &fakeGateway{session: activeSession()}
	act := newTestActions(gw, &fakeInvitationStore{})

	_, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.NoError(t, err)

	var stages []string
	for _, call := range gw.calls {
		if call != "get_session" {
			stages = append(stages, call)
		}
	}
	assert.Equal(t, []string{"sign_up", "create_organization", "create_team"}, stages)
}

func TestSetupOrganizationGeneratesCredential(t *testing.T) {
	gw := &fakeGateway{session: activeSession()}
	act := newTestActions(gw, &fakeInvitationStore{})

	_, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.NoError(t, err)

	password := gw.lastSignUp.Password
	require.Len(t, password, utils.PasswordLength)
	for _, r := range password {
		assert.True(t, strings.ContainsRune(utils.PasswordCharset, r))
	}

	// Reset callback is forwarded so the provider can mail the new user
	assert.Equal(t, "https://app.sitecrew.test/reset-password", gw.lastSignUp.CallbackURL)
}

func TestSetupOrganizationValidationFailureTouchesNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SetupInput)
	}{
		{"empty organization name", func(in *SetupInput) { in.Organization.Name = "" }},
		{"organization name with illegal chars", func(in *SetupInput) { in.Organization.Name = "Acme!" }},
		{"empty member list", func(in *SetupInput) { in.Members = nil }},
		{"too many members", func(in *SetupInput) {
			in.Members = make([]SetupMemberInput, 21)
			for i := range in.Members {
				in.Members[i] = SetupMemberInput{Email: "m@acme.test", Role: models.RoleMember}
			}
		}},
		{"malformed member email", func(in *SetupInput) { in.Members[0].Email = "not-an-email" }},
		{"unknown member role", func(in *SetupInput) { in.Members[0].Role = "superuser" }},
		{"user name too short", func(in *SetupInput) { in.User.Name = "P" }},
		{"bad slug", func(in *SetupInput) { in.Organization.Slug = "Not A Slug" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{session: activeSession()}
			store := &fakeInvitationStore{}
			act := newTestActions(gw, store)

			input := validSetupInput()
			tt.mutate(&input)

			_, err := act.SetupOrganization(context.Background(), nil, input)
			require.Error(t, err)
			assert.Empty(t, gw.calls, "no gateway call may happen on validation failure")
			assert.Empty(t, store.created)
		})
	}
}

func TestSetupOrganizationUserFailureHaltsSequence(t *testing.T) {
	gw := &fakeGateway{session: activeSession(), signUpErr: errors.New("email already registered")}
	act := newTestActions(gw, &fakeInvitationStore{})

	_, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
	assert.NotContains(t, gw.calls, "create_organization")
	assert.NotContains(t, gw.calls, "create_team")
}

func TestSetupOrganizationOrgFailureHaltsSequence(t *testing.T) {
	gw := &fakeGateway{session: activeSession(), createOrgErr: errors.New("slug taken")}
	act := newTestActions(gw, &fakeInvitationStore{})

	_, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.Error(t, err)
	assert.Equal(t, "Failed to create organization", err.Error())

	// User creation already happened and is not rolled back
	assert.Contains(t, gw.calls, "sign_up")
	assert.NotContains(t, gw.calls, "create_team")
}

func TestSetupOrganizationTeamFailureHaltsSequence(t *testing.T) {
	gw := &fakeGateway{session: activeSession(), createTeamErr: errors.New("boom")}
	store := &fakeInvitationStore{}
	act := newTestActions(gw, store)

	_, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.Error(t, err)
	assert.Equal(t, "Failed to create team", err.Error())

	// User and organization remain, no invitations are attempted
	assert.Contains(t, gw.calls, "sign_up")
	assert.Contains(t, gw.calls, "create_organization")
	assert.Empty(t, store.created)
}

func TestSetupOrganizationToleratesInvitationFailures(t *testing.T) {
	gw := &fakeGateway{session: activeSession()}
	store := &fakeInvitationStore{
		failFor: map[string]error{"foreman@acme.test": errors.New("insert failed")},
	}
	act := newTestActions(gw, store)

	output, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.NoError(t, err, "invitation failures must not fail the workflow")
	require.Len(t, output.Invitations, 2)
	assert.Equal(t, "pm@acme.test", output.Invitations[0].Email)
	assert.Equal(t, "owner2@acme.test", output.Invitations[1].Email)
}

func TestSetupOrganizationAllInvitationsFail(t *testing.T) {
	gw := &fakeGateway{session: activeSession()}
	store := &fakeInvitationStore{
		failFor: map[string]error{
			"pm@acme.test":      errors.New("insert failed"),
			"foreman@acme.test": errors.New("insert failed"),
			"owner2@acme.test":  errors.New("insert failed"),
		},
	}
	act := newTestActions(gw, store)

	output, err := act.SetupOrganization(context.Background(), nil, validSetupInput())
	require.NoError(t, err)
	assert.NotNil(t, output.Invitations)
	assert.Empty(t, output.Invitations)
}
