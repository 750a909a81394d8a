package oauth2

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/tasks/v1"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
)

const (
	// FreshnessWindow is how long before expiry a token is already treated as expired
	FreshnessWindow = 5 * time.Minute

	// Used when the token endpoint omits expires_in
	defaultTokenLifetime = time.Hour
)

var scopes = []string{
	calendar.CalendarScope,
	tasks.TasksScope,
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// TokenService handles OAuth2 token operations against the calendar provider
type TokenService interface {
	// AuthCodeURL builds the consent URL carrying state
	AuthCodeURL(state string) string

	// ExchangeCode exchanges an authorization code for a full credential
	ExchangeCode(ctx context.Context, code string) (*entity.Credential, error)

	// EnsureValidAccessToken returns a token valid for at least FreshnessWindow,
	// refreshing and persisting it first when needed
	EnsureValidAccessToken(ctx context.Context, userID string) (string, error)
}

type tokenService struct {
	oauthConfig *oauth2.Config
	userRepo    repository.UserRepository
	client      *http.Client
	logger      *zap.Logger
	now         func() time.Time
}

func NewTokenService(cfg *config.Config, userRepo repository.UserRepository, client *http.Client, logger *zap.Logger) TokenService {
	return newTokenService(cfg, userRepo, client, logger, time.Now)
}

func newTokenService(cfg *config.Config, userRepo repository.UserRepository, client *http.Client, logger *zap.Logger, now func() time.Time) *tokenService {
	return &tokenService{
		oauthConfig: OAuthConfig(cfg.Google),
		userRepo:    userRepo,
		client:      client,
		logger:      logger,
		now:         now,
	}
}

// OAuthConfig builds the authorization-code client for the provider.
func OAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}
}

func (s *tokenService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (s *tokenService) ExchangeCode(ctx context.Context, code string) (*entity.Credential, error) {
	s.logger.Info("Exchanging authorization code for tokens")

	token, err := s.oauthConfig.Exchange(s.withClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrTokenExchange, describe(err))
	}

	if token.AccessToken == "" || token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token response missing access or refresh token", entity.ErrTokenExchange)
	}

	expiresAt := s.expiry(token)
	return &entity.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    &expiresAt,
	}, nil
}

func (s *tokenService) EnsureValidAccessToken(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	cred := user.Credential()
	if cred == nil {
		return "", entity.ErrNotConnected
	}

	if !cred.ExpiresWithin(s.now(), FreshnessWindow) {
		return cred.AccessToken, nil
	}

	s.logger.Info("Access token expired or expiring soon, refreshing",
		zap.String("user_id", userID),
	)

	// An empty access token forces the source to hit the token endpoint
	source := s.oauthConfig.TokenSource(s.withClient(ctx), &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := source.Token()
	if err != nil {
		s.logger.Warn("Token refresh rejected",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s", entity.ErrRefreshFailed, describe(err))
	}

	expiresAt := s.expiry(token)
	if err := s.userRepo.UpdateAccessToken(ctx, userID, token.AccessToken, token.RefreshToken, expiresAt); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	s.logger.Info("Successfully refreshed access token",
		zap.String("user_id", userID),
		zap.Time("expires_at", expiresAt),
	)

	return token.AccessToken, nil
}

func (s *tokenService) withClient(ctx context.Context) context.Context {
	if s.client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, s.client)
}

// expiry anchors the provider-reported lifetime on the service clock
func (s *tokenService) expiry(token *oauth2.Token) time.Time {
	now := s.now()
	if token.ExpiresIn > 0 {
		return now.Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	if !token.Expiry.IsZero() {
		return now.Add(time.Until(token.Expiry))
	}
	return now.Add(defaultTokenLifetime)
}

func describe(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode != "" {
			return fmt.Sprintf("status %d %s", retrieveErr.Response.StatusCode, retrieveErr.ErrorCode)
		}
		return fmt.Sprintf("status %d", retrieveErr.Response.StatusCode)
	}
	return err.Error()
}
