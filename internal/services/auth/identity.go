package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// Session is a signed-in user's token pair
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	User         UserInfo `json:"user"`
}

// IdentityProvider signs users in and out
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SendMagicLink(ctx context.Context, email string) error
	SignOut(ctx context.Context, accessToken string) error
	User(ctx context.Context, accessToken string) (*UserInfo, error)
}

// GoTrueProvider implements IdentityProvider against Supabase Auth
type GoTrueProvider struct {
	client gotrue.Client
}

// NewGoTrueProvider creates a provider for the project at supabaseURL
func NewGoTrueProvider(supabaseURL, anonKey string, timeout time.Duration) *GoTrueProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := gotrue.New("", anonKey).
		WithCustomGoTrueURL(strings.TrimRight(supabaseURL, "/") + "/auth/v1").
		WithClient(http.Client{Timeout: timeout})
	return &GoTrueProvider{client: client}
}

// SignInWithPassword exchanges email and password for a session
func (p *GoTrueProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidTokenRequest) {
			return nil, ErrInvalidCredentials
		}
		return nil, providerError(err)
	}

	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		ExpiresAt:    resp.ExpiresAt,
		User: UserInfo{
			ID:    resp.User.ID.String(),
			Email: resp.User.Email,
			Role:  resp.User.Role,
		},
	}, nil
}

// SendMagicLink emails a one-time sign-in link to an existing user
func (p *GoTrueProvider) SendMagicLink(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if email == "" {
		return ErrEmailRequired
	}
	if err := p.client.OTP(types.OTPRequest{Email: email, CreateUser: false}); err != nil {
		return providerError(err)
	}
	return nil
}

// SignOut revokes the refresh tokens behind accessToken
func (p *GoTrueProvider) SignOut(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.client.WithToken(accessToken).Logout(); err != nil {
		return providerError(err)
	}
	return nil
}

// User returns the user that owns accessToken
func (p *GoTrueProvider) User(ctx context.Context, accessToken string) (*UserInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := p.client.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, providerError(err)
	}
	return &UserInfo{
		ID:    resp.ID.String(),
		Email: resp.Email,
		Role:  resp.Role,
	}, nil
}

var statusPattern = regexp.MustCompile(`(?s)^response status code (\d{3})(?::\s*(.*))?$`)

// providerError turns the client's "response status code N: body" errors
// into a ProviderError carrying the provider's own message
func providerError(err error) error {
	m := statusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	status, _ := strconv.Atoi(m[1])
	return ProviderError{Status: status, Message: providerMessage(m[2])}
}

func providerMessage(body string) string {
	if body == "" {
		return ""
	}
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	for _, s := range []string{payload.ErrorDescription, payload.Msg, payload.Message, payload.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}
