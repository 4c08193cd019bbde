package actions

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"sitecrew/gateway"
	"sitecrew/utils"
)

type CreateUserInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Image       string `json:"image" validate:"omitempty,url"`
	CallbackURL string `json:"callbackURL" validate:"omitempty,url"`
}

// CreateUser registers a new user with the identity gateway. This is the one
// action without a session gate: it backs initial sign-up.
func (a *Actions) CreateUser(ctx context.Context, hdr http.Header, input CreateUserInput) (*gateway.User, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	user, err := a.gw.SignUp(ctx, hdr, gateway.SignUpInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		Image:       input.Image,
		CallbackURL: input.CallbackURL,
	})
	if err != nil {
		reportUpstreamFailure("create_user", err, logrus.Fields{"email": input.Email})
		if msg := err.Error(); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, errors.New("Failed to create user")
	}

	return user, nil
}

// CurrentUser returns the user bound to the caller's session.
func (a *Actions) CurrentUser(ctx context.Context, hdr http.Header) (*gateway.User, error) {
	session, err := a.requireSession(ctx, hdr)
	if err != nil {
		return nil, err
	}
	if session.User == nil {
		return nil, errors.New("No authenticated user found")
	}
	return session.User, nil
}
