package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"book-catalog-api/internal/domains/user"
	"book-catalog-api/internal/infrastructure/tokenstore"
	"book-catalog-api/pkg/jwt"
)

// dummyHash is compared against when the username does not exist,
// so unknown-user and wrong-password take the same time.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// userService implements user.Service
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	tokens     tokenstore.Store
}

// NewUserService creates the service instance.
// Dependencies are injected via constructor.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager, tokens tokenstore.Store) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		tokens:     tokens,
	}
}

// Register creates a new user account
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	// DTO validation also runs at the handler, double-check here
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	// bcrypt cost 12: balance between security and latency
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. PERSIST
	// Unique constraint on username surfaces as ErrUsernameTaken
	created, err := s.repo.Create(ctx, req.Username, string(passwordHash))
	if err != nil {
		return nil, err
	}

	dto := created.ToDTO()
	return &dto, nil
}

// authenticate resolves the user and verifies the password.
// Both failure modes collapse into ErrInvalidCredentials.
func (s *userService) authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Burn a bcrypt comparison so a missing user costs the same as a wrong password
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return u, nil
}

// Login authenticates and issues a token pair
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.TokenPair, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. AUTHENTICATE (unified failure)
	u, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 3. ISSUE TOKENS
	pair, err := s.issueTokens(ctx, u.Username)
	if err != nil {
		return nil, err
	}

	// 4. UPDATE LAST LOGIN (fire-and-forget)
	// Failure must never fail the login response; log and drop.
	go func(username string) {
		bg, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.UpdateLastLogin(bg, username); err != nil {
			log.Warn().Err(err).Str("username", username).Msg("last login update failed")
		}
	}(u.Username)

	return pair, nil
}

// issueTokens generates the pair and records the refresh token in the store
func (s *userService) issueTokens(ctx context.Context, username string) (*user.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(username)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// A store outage degrades refresh, not login; access tokens keep working
	if err := s.tokens.Save(ctx, username, refreshToken, s.jwtManager.RefreshTTL()); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("refresh token not persisted")
	}

	return &user.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessTTL()),
	}, nil
}

// Refresh rotates a live refresh token into a new pair
func (s *userService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.TokenPair, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. VERIFY TOKEN SIGNATURE, EXPIRY AND TYPE
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	username := claims.Subject

	// 3. TOKEN MUST STILL BE LIVE IN THE STORE
	live, err := s.tokens.Exists(ctx, username, req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("check refresh token: %w", err)
	}
	if !live {
		return nil, user.ErrInvalidToken
	}

	// 4. SUBJECT MUST STILL BE A LIVE USER
	if _, err := s.repo.GetByUsername(ctx, username); err != nil {
		return nil, user.ErrInvalidToken
	}

	// 5. ROTATE: revoke old, issue new
	if err := s.tokens.Revoke(ctx, username, req.RefreshToken); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("old refresh token not revoked")
	}

	return s.issueTokens(ctx, username)
}

// GetByUsername resolves a live user for middleware and /users/me
func (s *userService) GetByUsername(ctx context.Context, username string) (*user.UserDTO, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}
