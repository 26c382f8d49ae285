package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrProfileNotFound oznacza, że dostawca nie zna danego subject id.
	ErrProfileNotFound = errors.New("identity: profil nie znaleziony")
)

// Profile opisuje dane użytkownika zwracane przez dostawcę tożsamości.
// Lista adresów e-mail może być pusta, imię i nazwisko są opcjonalne.
type Profile struct {
	Subject   string
	Emails    []string
	FirstName string
	LastName  string
}

// Client enkapsuluje wywołania API dostawcy tożsamości.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// Config opisuje dane dostępowe klienta.
type Config struct {
	BaseURL  string
	APIToken string
}

// New tworzy klienta API dostawcy tożsamości.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("identity: base url wymagany")
	}

	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    base,
		apiToken:   strings.TrimSpace(cfg.APIToken),
	}, nil
}

type profilePayload struct {
	ID             string  `json:"id"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// GetProfile pobiera profil użytkownika po zewnętrznym subject id.
func (c *Client) GetProfile(ctx context.Context, subject string) (*Profile, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, errors.New("identity: subject wymagany")
	}

	endpoint := c.baseURL + "/users/" + url.PathEscape(subject)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProfileNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity: status %d", resp.StatusCode)
	}

	var payload profilePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("identity: dekodowanie odpowiedzi: %w", err)
	}

	profile := &Profile{Subject: subject}
	if payload.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*payload.FirstName)
	}
	if payload.LastName != nil {
		profile.LastName = strings.TrimSpace(*payload.LastName)
	}
	for _, addr := range payload.EmailAddresses {
		email := strings.TrimSpace(addr.EmailAddress)
		if email != "" {
			profile.Emails = append(profile.Emails, email)
		}
	}

	return profile, nil
}
