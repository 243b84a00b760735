package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-texerp/internal/auth/errors"
	"go-texerp/internal/shared/normalize"
	"go-texerp/internal/tenant"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenLifetime bounds the staleness window: permission edits only take
// effect once the user logs in again, so tokens stay short-lived.
const TokenLifetime = 24 * time.Hour

// Claims is the decoded session token. The token is the sole authority
// for entitlements; nothing is looked up server-side on validation.
type Claims struct {
	UserID     string   `json:"user_id"`
	Username   string   `json:"username"`
	IsAdmin    bool     `json:"is_admin"`
	CanAdd     bool     `json:"can_add"`
	CanEdit    bool     `json:"can_edit"`
	CanDelete  bool     `json:"can_delete"`
	DCClose    bool     `json:"dc_close"`
	IsActive   bool     `json:"is_active"`
	ConcernIDs []string `json:"concern_ids"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)

	// ValidateToken verifies signature and expiry only. Pure, no I/O.
	ValidateToken(tokenString string) (*Claims, error)

	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)

	GetMe(ctx context.Context, userID string) (*UserResponse, error)
}

type service struct {
	repo    Repository
	tenants tenant.Service
	logger  *zap.Logger
}

func NewService(repo Repository, tenants tenant.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tenants: tenants, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	user, err := s.repo.GetByUsernameKey(ctx, normalize.Key(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// unknown user reads the same as a wrong password
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login user lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("login rejected for inactive account", zap.String("user_id", user.ID.String()))
		return LoginResponse{}, autherrors.ErrAccountInactive
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return LoginResponse{}, err
	}

	autoSelect, candidates, err := s.tenants.ResolveLoginTenants(ctx, user.ConcernIDs())
	if err != nil {
		s.logger.Error("login tenant resolution failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.Bool("auto_select", autoSelect != nil),
		zap.Int("candidates", len(candidates)),
	)

	return LoginResponse{
		Token:            token,
		User:             mapToUserResponse(user),
		AutoSelectTenant: autoSelect,
		Tenants:          candidates,
	}, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	return claims, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	user := &User{
		ID:          uuid.New(),
		Username:    username,
		UsernameKey: normalize.Key(username),
		Password:    string(hashed),
		IsAdmin:     req.IsAdmin,
		CanAdd:      req.CanAdd,
		CanEdit:     req.CanEdit,
		CanDelete:   req.CanDelete,
		DCClose:     req.DCClose,
		IsActive:    true,
	}
	for _, cid := range req.ConcernIDs {
		concernID, err := uuid.Parse(cid)
		if err != nil {
			return UserResponse{}, autherrors.ErrInvalidUserID
		}
		user.Concerns = append(user.Concerns, UserConcern{UserID: user.ID, ConcernID: concernID})
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return UserResponse{}, autherrors.ErrUsernameTaken
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", user.ID.String()))
	return mapToUserResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := mapToUserResponse(u)
	return &resp, nil
}

func (s *service) generateToken(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     user.ID.String(),
		Username:   user.Username,
		IsAdmin:    user.IsAdmin,
		CanAdd:     user.CanAdd,
		CanEdit:    user.CanEdit,
		CanDelete:  user.CanDelete,
		DCClose:    user.DCClose,
		IsActive:   user.IsActive,
		ConcernIDs: user.ConcernIDs(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		IsAdmin:    u.IsAdmin,
		CanAdd:     u.CanAdd,
		CanEdit:    u.CanEdit,
		CanDelete:  u.CanDelete,
		DCClose:    u.DCClose,
		IsActive:   u.IsActive,
		ConcernIDs: u.ConcernIDs(),
	}
}
