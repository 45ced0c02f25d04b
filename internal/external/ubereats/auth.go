// Package ubereats implements the Uber Eats outbound calls: the OAuth
// client-credentials token exchange and the authorized order fetch.
package ubereats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Scope is the fixed OAuth scope requested for order retrieval.
const Scope = "eats.order"

const defaultTimeout = 10 * time.Second

// Token is a short-lived bearer token. It is acquired per pipeline invocation,
// used once for the immediate order fetch and then discarded; no caching
// across requests.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// CredentialBroker exchanges a client id/secret for a bearer token.
type CredentialBroker struct {
	tokenURL     string
	clientID     string
	clientSecret string
	http         *http.Client
}

func NewCredentialBroker(tokenURL, clientID, clientSecret string, httpClient *http.Client) *CredentialBroker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &CredentialBroker{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         httpClient,
	}
}

// Token performs a fresh client-credentials exchange. Every invocation is a
// network round trip; failures surface as ErrAuth and are never swallowed.
func (b *CredentialBroker) Token(ctx context.Context) (Token, error) {
	form := url.Values{}
	form.Set("client_id", b.clientID)
	form.Set("client_secret", b.clientSecret)
	form.Set("grant_type", "client_credentials")
	form.Set("scope", Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.http.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return Token{}, fmt.Errorf("%w: %s: %s", ErrAuth, resp.Status, string(raw))
	}

	var token Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return Token{}, fmt.Errorf("%w: unmarshal token response: %v", ErrAuth, err)
	}
	if token.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: empty access_token in response", ErrAuth)
	}

	return token, nil
}
