// Package usecase implements user registration, authentication and session
// handling.
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	ledgerdomain "github.com/MihneaE/slot-machine-microservices/internal/modules/ledger/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/user/domain"
	"github.com/MihneaE/slot-machine-microservices/internal/modules/user/repository"
	"github.com/MihneaE/slot-machine-microservices/pkg/logger"
	"github.com/MihneaE/slot-machine-microservices/pkg/service"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase handles user business logic. Registration opens the player's
// ledger account with the sign-up balance, so a freshly registered player
// can spin immediately.
type UserUseCase struct {
	playerRepo    *repository.PlayerRepository
	sessionRepo   *repository.SessionRepository
	ledgerSvc     service.LedgerService
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(
	playerRepo *repository.PlayerRepository,
	sessionRepo *repository.SessionRepository,
	ledgerSvc service.LedgerService,
	jwtSecret string,
	tokenDuration time.Duration,
) *UserUseCase {
	return &UserUseCase{
		playerRepo:    playerRepo,
		sessionRepo:   sessionRepo,
		ledgerSvc:     ledgerSvc,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// Register registers a new player and opens their ledger account
func (uc *UserUseCase) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, fmt.Errorf("username and password are required")
	}

	if len(password) < 6 {
		return 0, fmt.Errorf("password must be at least 6 characters")
	}

	exists, err := uc.playerRepo.UsernameExists(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return 0, fmt.Errorf("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	player := &domain.Player{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Status:       domain.PlayerStatusActive,
	}

	if err := uc.playerRepo.Create(ctx, player); err != nil {
		return 0, fmt.Errorf("failed to create player: %w", err)
	}

	// the sign-up balance; an account opened by first gameplay reference
	// instead gets the larger default balance
	if _, err := uc.ledgerSvc.CreateAccount(ctx, username, ledgerdomain.RegistrationBalance); err != nil {
		if !errors.Is(err, ledgerdomain.ErrAccountExists) {
			return 0, fmt.Errorf("failed to open ledger account: %w", err)
		}
	}

	logger.Info(ctx).
		Int64("user_id", player.UserID).
		Str("username", username).
		Msg("player registered")

	return player.UserID, nil
}

// Login authenticates a player and returns a JWT token plus a refresh token
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (int64, string, string, time.Time, error) {
	player, err := uc.playerRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, "", "", time.Time{}, fmt.Errorf("invalid username or password")
	}

	if !player.IsActive() {
		return 0, "", "", time.Time{}, fmt.Errorf("player account is not active")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return 0, "", "", time.Time{}, fmt.Errorf("invalid username or password")
	}

	token, expiresAt, err := uc.generateToken(player.UserID, player.Username)
	if err != nil {
		return 0, "", "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	refreshToken, err := uc.generateRefreshToken()
	if err != nil {
		return 0, "", "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &domain.Session{
		SessionID: refreshToken,
		UserID:    player.UserID,
		Token:     token,
		ExpiresAt: expiresAt.Add(24 * time.Hour * 7), // refresh token valid for 7 days
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return 0, "", "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}

	_ = uc.playerRepo.UpdateLastLogin(ctx, player.UserID)

	return player.UserID, token, refreshToken, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the identity it carries
func (uc *UserUseCase) ValidateToken(ctx context.Context, tokenString string) (int64, string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return 0, "", time.Time{}, fmt.Errorf("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", time.Time{}, fmt.Errorf("invalid token claims")
	}

	userID := int64(claims["user_id"].(float64))
	username := claims["username"].(string)
	exp := int64(claims["exp"].(float64))
	expiresAt := time.Unix(exp, 0)

	return userID, username, expiresAt, nil
}

// Logout invalidates the sessions associated with a token
func (uc *UserUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessionRepo.DeleteByToken(ctx, token)
}

// RefreshToken generates a new access token from a refresh token
func (uc *UserUseCase) RefreshToken(ctx context.Context, refreshToken string) (string, string, time.Time, error) {
	session, err := uc.sessionRepo.GetBySessionID(ctx, refreshToken)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("invalid refresh token")
	}

	if time.Now().After(session.ExpiresAt) {
		_ = uc.sessionRepo.Delete(ctx, session.SessionID)
		return "", "", time.Time{}, fmt.Errorf("refresh token expired")
	}

	player, err := uc.playerRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("player not found")
	}

	if !player.IsActive() {
		return "", "", time.Time{}, fmt.Errorf("player account is not active")
	}

	token, expiresAt, err := uc.generateToken(player.UserID, player.Username)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	session.Token = token
	session.ExpiresAt = expiresAt.Add(24 * time.Hour * 7)
	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to update session: %w", err)
	}

	return token, refreshToken, expiresAt, nil
}

func (uc *UserUseCase) generateToken(userID int64, username string) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.tokenDuration)

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (uc *UserUseCase) generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
