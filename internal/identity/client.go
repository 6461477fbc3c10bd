// Package identity wraps the hosted identity provider's HTTP API. The
// provider owns all credentials: sign-in happens through a one-time
// emailed magic link, and this process only ever exchanges or inspects
// provider-issued tokens.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// User is the provider's view of an authenticated account.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	EmailConfirmedAt string `json:"email_confirmed_at"`
	CreatedAt        string `json:"created_at"`
}

func (user User) EmailConfirmed() bool {
	return strings.TrimSpace(user.EmailConfirmedAt) != ""
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the provider's auth API, e.g.
// https://<project>.supabase.co/auth/v1.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendMagicLink asks the provider to email a one-time sign-in link.
// Unknown addresses get an account created on the fly.
func (client *Client) SendMagicLink(ctx context.Context, email string, redirectTo string) error {
	endpoint := client.baseURL + "/otp"
	if redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	body, err := json.Marshal(map[string]any{
		"email":       email,
		"create_user": true,
	})
	if err != nil {
		return fmt.Errorf("encode magic link request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build magic link request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("apikey", client.apiKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("send magic link: %s", responseError(response))
	}
	return nil
}

// GetUser resolves a provider-issued access token to its account.
func (client *Client) GetUser(ctx context.Context, accessToken string) (User, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/user", nil)
	if err != nil {
		return User{}, fmt.Errorf("build user request: %w", err)
	}
	request.Header.Set("apikey", client.apiKey)
	request.Header.Set("Authorization", "Bearer "+accessToken)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return User{}, fmt.Errorf("fetch user: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("fetch user: %s", responseError(response))
	}

	var user User
	if err := json.NewDecoder(response.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode user response: %w", err)
	}
	if strings.TrimSpace(user.ID) == "" {
		return User{}, fmt.Errorf("fetch user: provider returned no user id")
	}
	return user, nil
}

// SignOut revokes the provider session behind the access token. Callers
// clear the local session regardless of the outcome.
func (client *Client) SignOut(ctx context.Context, accessToken string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	request.Header.Set("apikey", client.apiKey)
	request.Header.Set("Authorization", "Bearer "+accessToken)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("sign out: %s", responseError(response))
	}
	return nil
}

func responseError(response *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(response.Body, 4096))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Sprintf("status %d", response.StatusCode)
	}

	var payload struct {
		Message     string `json:"msg"`
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, message := range []string{payload.Message, payload.Description, payload.Error} {
			if strings.TrimSpace(message) != "" {
				return fmt.Sprintf("status %d: %s", response.StatusCode, message)
			}
		}
	}
	return fmt.Sprintf("status %d: %s", response.StatusCode, strings.TrimSpace(string(raw)))
}
