package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"byteapi/cmd/internal/domain/entity"
)

const authUserPath = "/auth/v1/user"

var ErrUnauthorized = errors.New("token rejected by identity provider")

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthClient resolves access tokens issued by Supabase Auth.
type AuthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAuthClient(baseURL, apiKey string, httpClient *http.Client) *AuthClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &AuthClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (a *AuthClient) ResolveUser(ctx context.Context, token string) (*entity.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+authUserPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("supabase auth failed with status code: %d", resp.StatusCode)
	}

	var user authUser
	if err = json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return &entity.Identity{Subject: user.ID, Email: user.Email}, nil
}
