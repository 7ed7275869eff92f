package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/harmonynav-backend/internal/logcipher"
	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/normalization"
	"github.com/yungbote/harmonynav-backend/internal/repos"
	"github.com/yungbote/harmonynav-backend/internal/requestdata"
	"github.com/yungbote/harmonynav-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string
	Password string
	Consent  bool
	AgeGroup string
	Gender   string
	Region   string
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, username, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	migration     MigrationService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	migration MigrationService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		migration:     migration,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	username := normalization.ParseUsername(in.Username)
	if username == "" {
		return nil, fmt.Errorf("a username is required to register")
	}
	if in.Password == "" {
		return nil, fmt.Errorf("a password is required to register")
	}
	exists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("username is already in use")
	}

	hashed, err := logcipher.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: hashed,
		Consent:  in.Consent,
		AgeGroup: orUnselected(in.AgeGroup),
		Gender:   orUnselected(in.Gender),
		Region:   orUnselected(in.Region),
	}
	if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, string, error) {
	username = normalization.ParseUsername(username)
	if username == "" || password == "" {
		return "", "", fmt.Errorf("username and password are required to login")
	}

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return "", "", fmt.Errorf("load user: %w", err)
	}
	if user == nil || !logcipher.VerifyPassword(user.Password, password) {
		return "", "", fmt.Errorf("invalid username or password")
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, userToken); cErr != nil {
			return fmt.Errorf("create user token: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}

	// Schema migration runs once per session load, before any analytics
	// touch the record set.
	if as.migration != nil {
		if mErr := as.migration.MigrateUser(ctx, user.ID); mErr != nil {
			as.log.Warn("Schema migration on login failed", "user_id", user.ID, "error", mErr)
		}
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("no refresh token in request context")
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, ftErr := as.userTokenRepo.GetByRefreshToken(ctx, tx, rd.RefreshToken)
		if ftErr != nil {
			return fmt.Errorf("fetch refresh token: %w", ftErr)
		}
		if existing == nil {
			return fmt.Errorf("unknown refresh token")
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.userTokenRepo.Delete(ctx, tx, existing.ID); dErr != nil {
				return fmt.Errorf("delete expired token: %w", dErr)
			}
			return fmt.Errorf("refresh token expired")
		}
		user, uErr := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if uErr != nil {
			return fmt.Errorf("load user for refresh: %w", uErr)
		}
		if user == nil {
			return fmt.Errorf("no user for refresh token")
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, newToken); cErr != nil {
			return fmt.Errorf("create user token: %w", cErr)
		}
		return as.userTokenRepo.Delete(ctx, tx, existing.ID)
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("no access token in request context")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, ftErr := as.userTokenRepo.GetByAccessToken(ctx, tx, rd.TokenString)
		if ftErr != nil {
			return fmt.Errorf("find token: %w", ftErr)
		}
		if token == nil {
			return nil
		}
		return as.userTokenRepo.Delete(ctx, tx, token.ID)
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	refreshToken := ""
	if token, ftErr := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString); ftErr == nil && token != nil {
		refreshToken = token.RefreshToken
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func orUnselected(v string) string {
	if v == "" {
		return types.Unselected
	}
	return v
}
