package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestSignUpDecodesUser(t *testing.T) {
	var gotPath string
	var gotBody SignUpInput

	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-1",
			"user": map[string]string{
				"id":    "user-1",
				"name":  "Pat Builder",
				"email": "pat@acme.test",
			},
		})
	}))
	defer server.Close()

	user, err := client.SignUp(context.Background(), nil, SignUpInput{
		Name:     "Pat Builder",
		Email:    "pat@acme.test",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/sign-up/email", gotPath)
	assert.Equal(t, "pat@acme.test", gotBody.Email)
	assert.Equal(t, "user-1", user.ID)
}

func TestSignUpWithoutUserIsError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	}))
	defer server.Close()

	_, err := client.SignUp(context.Background(), nil, SignUpInput{Name: "x", Email: "x@y.z", Password: "password123"})
	require.Error(t, err)
}

func TestForwardsSessionHeaders(t *testing.T) {
	var gotCookie, gotAuth string

	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(SessionData{
			Session: &Session{ID: "sess-1", UserID: "user-1", Token: "tok"},
			User:    &User{ID: "user-1", Email: "pat@acme.test"},
		})
	}))
	defer server.Close()

	hdr := make(http.Header)
	hdr.Set("Cookie", "better-auth.session_token=tok")
	hdr.Set("Authorization", "Bearer tok")

	session, err := client.GetSession(context.Background(), hdr)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "better-auth.session_token=tok", gotCookie)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestGetSessionAbsent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("null"))
			},
		},
		{
			name: "empty session object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"session":null,"user":null}`))
			},
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"no session"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(tt.handler)
			defer server.Close()

			session, err := client.GetSession(context.Background(), nil)
			require.NoError(t, err)
			assert.Nil(t, session)
		})
	}
}

func TestGatewayErrorMessage(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slug already taken"}`))
	}))
	defer server.Close()

	_, err := client.CreateOrganization(context.Background(), nil, CreateOrganizationInput{Name: "Acme", Slug: "acme"})
	require.Error(t, err)

	gwErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, gwErr.Status)
	assert.Equal(t, "Slug already taken", gwErr.Message)
}

func TestListMembers(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org-1", r.URL.Query().Get("organizationId"))
		_, _ = w.Write([]byte(`{"members":[{"id":"m1","userId":"u1","organizationId":"org-1","role":"admin"}]}`))
	}))
	defer server.Close()

	members, err := client.ListMembers(context.Background(), nil, "org-1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "admin", members[0].Role)
}

func TestSignUpRawRelaysResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "better-auth.session_token=tok; Path=/; HttpOnly")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"user-1"}}`))
	}))
	defer server.Close()

	resp, err := client.SignUpRaw(context.Background(), nil, []byte(`{"email":"pat@acme.test"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), `"user"`)
	require.Len(t, resp.SetCookies, 1)
	assert.Contains(t, resp.SetCookies[0], "session_token=tok")
}
