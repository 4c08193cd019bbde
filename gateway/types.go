package gateway

import "time"

// User is the gateway's account record.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Image     string     `json:"image,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Session is the opaque gateway session bound to a user.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// SessionData is the get-session payload: the session plus its user.
type SessionData struct {
	Session *Session `json:"session"`
	User    *User    `json:"user"`
}

type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type Team struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

type Member struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
	TeamID         string `json:"teamId,omitempty"`
	Email          string `json:"email,omitempty"`
}

type SignUpInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Image       string `json:"image,omitempty"`
	RememberMe  *bool  `json:"rememberMe,omitempty"`
	CallbackURL string `json:"callbackURL,omitempty"`
}

type SignInInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe *bool  `json:"rememberMe,omitempty"`
}

type CreateOrganizationInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateTeamInput struct {
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

type AddMemberInput struct {
	UserID         string   `json:"userId"`
	Role           []string `json:"role"`
	OrganizationID string   `json:"organizationId"`
	TeamID         string   `json:"teamId,omitempty"`
}

type RemoveMemberInput struct {
	MemberIDOrEmail string `json:"memberIdOrEmail"`
	OrganizationID  string `json:"organizationId"`
}

type UpdateMemberRoleInput struct {
	MemberID       string   `json:"memberId"`
	OrganizationID string   `json:"organizationId"`
	Role           []string `json:"role"`
}

// Response is a raw gateway reply, relayed verbatim by proxy endpoints.
type Response struct {
	Status     int
	Body       []byte
	SetCookies []string
}
