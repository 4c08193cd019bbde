package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps the external identity service's REST API. All identity,
// credential and session-token handling belongs to that service; this client
// only shapes requests and forwards the caller's session context.
type Client struct {
	baseURL string
	http    *http.Client
}

// Error is a normalized gateway failure. Message never contains stack traces
// or internal identifiers from the upstream service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SignUp creates an email/password user.
func (c *Client) SignUp(ctx context.Context, hdr http.Header, input SignUpInput) (*User, error) {
	var out struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-up/email", hdr, input, &out); err != nil {
		return nil, err
	}
	if out.User == nil || out.User.ID == "" {
		return nil, &Error{Status: http.StatusBadGateway, Message: "gateway returned no user"}
	}
	return out.User, nil
}

// SignUpRaw forwards a pre-validated sign-up body and returns the gateway's
// reply untouched, for endpoints that relay the upstream response.
func (c *Client) SignUpRaw(ctx context.Context, hdr http.Header, body []byte) (*Response, error) {
	return c.doRaw(ctx, http.MethodPost, "/api/auth/sign-up/email", hdr, body)
}

// SignInRaw forwards a sign-in body verbatim so the gateway's session cookie
// reaches the caller.
func (c *Client) SignInRaw(ctx context.Context, hdr http.Header, body []byte) (*Response, error) {
	return c.doRaw(ctx, http.MethodPost, "/api/auth/sign-in/email", hdr, body)
}

func (c *Client) SignOut(ctx context.Context, hdr http.Header) error {
	return c.do(ctx, http.MethodPost, "/api/auth/sign-out", hdr, struct{}{}, nil)
}

// GetSession resolves the caller's session from the forwarded headers.
// Returns (nil, nil) when no session exists.
func (c *Client) GetSession(ctx context.Context, hdr http.Header) (*SessionData, error) {
	var out SessionData
	if err := c.do(ctx, http.MethodGet, "/api/auth/get-session", hdr, nil, &out); err != nil {
		var gwErr *Error
		if errors.As(err, &gwErr) && gwErr.Status == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	if out.Session == nil || out.Session.ID == "" {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) CreateOrganization(ctx context.Context, hdr http.Header, input CreateOrganizationInput) (*Organization, error) {
	var out Organization
	if err := c.do(ctx, http.MethodPost, "/api/auth/organization/create", hdr, input, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, &Error{Status: http.StatusBadGateway, Message: "gateway returned no organization"}
	}
	return &out, nil
}

func (c *Client) CreateTeam(ctx context.Context, hdr http.Header, input CreateTeamInput) (*Team, error) {
	var out Team
	if err := c.do(ctx, http.MethodPost, "/api/auth/organization/create-team", hdr, input, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, &Error{Status: http.StatusBadGateway, Message: "gateway returned no team"}
	}
	return &out, nil
}

func (c *Client) AddMember(ctx context.Context, hdr http.Header, input AddMemberInput) (*Member, error) {
	var out Member
	if err := c.do(ctx, http.MethodPost, "/api/auth/organization/add-member", hdr, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMembers(ctx context.Context, hdr http.Header, organizationID string) ([]Member, error) {
	var out struct {
		Members []Member `json:"members"`
	}
	path := "/api/auth/organization/list-members?organizationId=" + url.QueryEscape(organizationID)
	if err := c.do(ctx, http.MethodGet, path, hdr, nil, &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

func (c *Client) RemoveMember(ctx context.Context, hdr http.Header, input RemoveMemberInput) error {
	return c.do(ctx, http.MethodPost, "/api/auth/organization/remove-member", hdr, input, nil)
}

func (c *Client) UpdateMemberRole(ctx context.Context, hdr http.Header, input UpdateMemberRoleInput) (*Member, error) {
	var out Member
	if err := c.do(ctx, http.MethodPost, "/api/auth/organization/update-member-role", hdr, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, hdr http.Header, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode gateway request: %w", err)
		}
	}

	resp, err := c.doRaw(ctx, method, path, hdr, payload)
	if err != nil {
		return err
	}

	if out != nil && len(resp.Body) > 0 && string(resp.Body) != "null" {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, hdr http.Header, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	forwardSessionHeaders(req, hdr)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Status: http.StatusBadGateway, Message: "identity gateway unreachable"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}

	return &Response{
		Status:     resp.StatusCode,
		Body:       data,
		SetCookies: resp.Header.Values("Set-Cookie"),
	}, nil
}

// forwardSessionHeaders passes through only the headers the gateway needs to
// resolve the caller's session.
func forwardSessionHeaders(req *http.Request, hdr http.Header) {
	if hdr == nil {
		return
	}
	for _, key := range []string{"Cookie", "Authorization"} {
		for _, v := range hdr.Values(key) {
			req.Header.Add(key, v)
		}
	}
}

func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("identity gateway request failed (status %d)", status)
}
