package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/normalization"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/requestdata"
	"github.com/yungbote/scrapbook-backend/internal/types"
	"github.com/yungbote/scrapbook-backend/internal/utils"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) (string, string, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (string, string, error) {
	utils.NormalizeUserFields(ctx, user)
	if vErr := utils.InputValidation(ctx, "registration", as.userRepo, as.log, user, "", ""); vErr != nil {
		return "", "", vErr
	}
	if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
		return "", "", hErr
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
			return fmt.Errorf("Failed to create user: %w", ucErr)
		}
		var tErr error
		accessToken, refreshToken, tErr = as.issueTokenPair(ctx, tx, user)
		return tErr
	}); err != nil {
		as.log.Warn("RegisterUser transaction error", "error", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = normalization.ParseInputString(email)
	if vErr := utils.InputValidation(ctx, "login", as.userRepo, as.log, nil, email, password); vErr != nil {
		return "", "", vErr
	}

	users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if usErr != nil {
		return "", "", fmt.Errorf("Error retrieving user by email: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("Invalid credentials")
	}

	user := users[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", "", fmt.Errorf("Invalid credentials")
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dtErr := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); dtErr != nil {
			return fmt.Errorf("Failed to clear previous user tokens: %w", dtErr)
		}
		var tErr error
		accessToken, refreshToken, tErr = as.issueTokenPair(ctx, tx, user)
		return tErr
	}); err != nil {
		as.log.Warn("LoginUser transaction error", "error", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", fmt.Errorf("Refresh token is required")
	}
	userID, pErr := as.parseToken(refreshToken)
	if pErr != nil {
		return "", "", fmt.Errorf("Invalid refresh token: %w", pErr)
	}

	tokenRow, trErr := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if trErr != nil {
		return "", "", fmt.Errorf("Refresh token is not active")
	}
	if tokenRow.UserID != userID {
		return "", "", fmt.Errorf("Refresh token is not active")
	}

	users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if uErr != nil || len(users) == 0 {
		return "", "", fmt.Errorf("User for refresh token not found")
	}
	user := users[0]

	var accessToken, newRefreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dtErr := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); dtErr != nil {
			return fmt.Errorf("Failed to rotate user tokens: %w", dtErr)
		}
		var tErr error
		accessToken, newRefreshToken, tErr = as.issueTokenPair(ctx, tx, user)
		return tErr
	}); err != nil {
		as.log.Warn("RefreshUser transaction error", "error", err)
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("Not authenticated")
	}
	return as.userTokenRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

// SetContextFromToken validates the access token against both its signature
// and the token table, so a logged-out token stops working immediately.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	userID, pErr := as.parseToken(tokenString)
	if pErr != nil {
		return ctx, fmt.Errorf("Invalid token: %w", pErr)
	}

	tokenRow, trErr := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if trErr != nil {
		return ctx, fmt.Errorf("Token is not active")
	}
	if tokenRow.UserID != userID {
		return ctx, fmt.Errorf("Token is not active")
	}
	if tokenRow.ExpiresAt.Before(time.Now()) {
		return ctx, fmt.Errorf("Token has expired")
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: tokenRow.RefreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	now := time.Now()
	accessToken, aErr := as.signToken(user.ID, now, as.accessTTL)
	if aErr != nil {
		return "", "", fmt.Errorf("Failed to sign access token: %w", aErr)
	}
	refreshToken, rErr := as.signToken(user.ID, now, as.refreshTTL)
	if rErr != nil {
		return "", "", fmt.Errorf("Failed to sign refresh token: %w", rErr)
	}

	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.accessTTL),
	}
	if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{row}); cErr != nil {
		return "", "", fmt.Errorf("Failed to persist user token: %w", cErr)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) signToken(userID uuid.UUID, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(ttl).Unix(),
		"jti":     uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parseToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid claims")
	}
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("user_id claim missing")
	}
	userID, uErr := uuid.Parse(rawID)
	if uErr != nil {
		return uuid.Nil, fmt.Errorf("user_id claim malformed: %w", uErr)
	}
	return userID, nil
}
