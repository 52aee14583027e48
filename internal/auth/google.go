package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ideagauge/ideagauge/internal/config"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuth drives the Google login dance and account upsert.
type GoogleOAuth struct {
	oauth       *oauth2.Config
	store       store.Store
	sessions    *SessionManager
	userinfoURL string
}

func NewGoogleOAuth(cfg config.OAuthConfig, st store.Store, sessions *SessionManager) *GoogleOAuth {
	return &GoogleOAuth{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		store:       st,
		sessions:    sessions,
		userinfoURL: googleUserinfoURL,
	}
}

// AuthURL returns the Google consent page URL carrying state.
func (g *GoogleOAuth) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HandleCallback exchanges the authorization code, fetches the Google
// profile, upserts the account as a verified Google user, and mints a
// session token.
func (g *GoogleOAuth) HandleCallback(ctx context.Context, code string) (string, *models.User, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("oauth exchange: %w", err)
	}

	profile, err := g.fetchProfile(ctx, token)
	if err != nil {
		return "", nil, err
	}
	if profile.Email == "" {
		return "", nil, fmt.Errorf("google profile has no email")
	}

	user, err := g.upsertUser(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	sessionToken, err := g.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return sessionToken, user, nil
}

func (g *GoogleOAuth) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleUser, error) {
	client := g.oauth.Client(ctx, token)
	resp, err := client.Get(g.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching google profile: status %d", resp.StatusCode)
	}

	var profile googleUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding google profile: %w", err)
	}
	return &profile, nil
}

func (g *GoogleOAuth) upsertUser(ctx context.Context, profile *googleUser) (*models.User, error) {
	email := normalizeEmail(profile.Email)

	existing, err := g.store.GetUserByEmail(ctx, email)
	if err == nil {
		// A returning user is verified by virtue of completing the
		// Google flow, whichever provider created the account.
		if !existing.IsVerified {
			if err := g.store.MarkUserVerified(ctx, email); err != nil {
				return nil, fmt.Errorf("marking verified: %w", err)
			}
			existing.IsVerified = true
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:         uuid.New(),
		Name:       profile.Name,
		Email:      email,
		Provider:   models.ProviderGoogle,
		IsVerified: true,
		Avatar:     profile.Picture,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := g.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating google user: %w", err)
	}
	return user, nil
}
