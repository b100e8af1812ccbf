package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-posts-api/internal/config"
	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/store"
	"github.com/MKhiriev/go-posts-api/internal/utils"
	"github.com/MKhiriev/go-posts-api/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; sessions carry an HS256 JWT.
type authService struct {
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	tokenDuration time.Duration
	bcryptCost    int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     bcrypt.DefaultCost,
		logger:         logger,
	}
}

// SignUp hashes the password and creates the account.
//
// Returns ErrEmailInUse when the email is already registered.
func (a *authService) SignUp(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContextOr(ctx, a.logger)

	if credentials.Email == "" || credentials.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{Email: credentials.Email, Password: string(hash)})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Debug().Str("email", credentials.Email).Msg("sign up with existing email")
		return models.User{}, ErrEmailInUse
	}
	if err != nil {
		log.Err(err).Str("email", credentials.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// SignIn returns the account matching the credentials.
//
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (a *authService) SignIn(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContextOr(ctx, a.logger)

	if credentials.Email == "" || credentials.Password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", credentials.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		log.Debug().Int64("id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContextOr(ctx, a.logger).Debug().Err(err).Msg("rejected session token")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
