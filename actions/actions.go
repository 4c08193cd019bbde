// Package actions implements the server-side domain actions behind the
// onboarding surface. Every action is a thin wrapper over the identity
// gateway: it checks the caller's session, delegates, and normalizes any
// failure into an error message safe to show the caller.
package actions

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sitecrew/gateway"
	"sitecrew/models"
)

// ErrAuthRequired is returned by any gated action invoked without a session.
var ErrAuthRequired = errors.New("Authentication required. Please sign in first.")

// Gateway is the slice of the identity service consumed by domain actions.
// *gateway.Client satisfies it; tests substitute fakes.
type Gateway interface {
	GetSession(ctx context.Context, hdr http.Header) (*gateway.SessionData, error)
	SignUp(ctx context.Context, hdr http.Header, input gateway.SignUpInput) (*gateway.User, error)
	CreateOrganization(ctx context.Context, hdr http.Header, input gateway.CreateOrganizationInput) (*gateway.Organization, error)
	CreateTeam(ctx context.Context, hdr http.Header, input gateway.CreateTeamInput) (*gateway.Team, error)
	AddMember(ctx context.Context, hdr http.Header, input gateway.AddMemberInput) (*gateway.Member, error)
	ListMembers(ctx context.Context, hdr http.Header, organizationID string) ([]gateway.Member, error)
	RemoveMember(ctx context.Context, hdr http.Header, input gateway.RemoveMemberInput) error
	UpdateMemberRole(ctx context.Context, hdr http.Header, input gateway.UpdateMemberRoleInput) (*gateway.Member, error)
}

// InvitationStore persists local invitation records.
type InvitationStore interface {
	Create(invitation *models.Invitation) error
}

type gormInvitationStore struct {
	db *gorm.DB
}

func NewInvitationStore(db *gorm.DB) InvitationStore {
	return &gormInvitationStore{db: db}
}

func (s *gormInvitationStore) Create(invitation *models.Invitation) error {
	return s.db.Create(invitation).Error
}

type Actions struct {
	gw               Gateway
	invitations      InvitationStore
	resetCallbackURL string
}

func New(gw Gateway, invitations InvitationStore, resetCallbackURL string) *Actions {
	return &Actions{
		gw:               gw,
		invitations:      invitations,
		resetCallbackURL: resetCallbackURL,
	}
}

// requireSession resolves the caller's session through the gateway using the
// forwarded request headers. Absence is an authorization failure, not an
// exception.
func (a *Actions) requireSession(ctx context.Context, hdr http.Header) (*gateway.SessionData, error) {
	session, err := a.gw.GetSession(ctx, hdr)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "actions",
		}).WithError(err).Error("session lookup failed")
		sentry.CaptureException(err)
		return nil, ErrAuthRequired
	}
	if session == nil || session.Session == nil {
		return nil, ErrAuthRequired
	}
	return session, nil
}

// reportUpstreamFailure logs a gateway failure and ships it to sentry with
// the failing operation tagged.
func reportUpstreamFailure(operation string, err error, fields logrus.Fields) {
	log := logrus.WithFields(fields).WithField("operation", operation)
	log.WithError(err).Error("identity gateway call failed")

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", operation)
		for k, v := range fields {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}
