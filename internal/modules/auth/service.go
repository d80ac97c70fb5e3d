package auth

import (
	"context"
	"errors"
	"strings"

	"reviewtrust/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type BusinessCreator interface {
	Create(ctx context.Context, b *domain.Business) error
}

// Service contains registration and login logic for all roles.
type Service struct {
	users      UserRepositoryInterface
	businesses BusinessCreator
	jwt        jwtService
}

func NewService(users UserRepositoryInterface, businesses BusinessCreator, jwt jwtService) *Service {
	return &Service{users: users, businesses: businesses, jwt: jwt}
}

// Register creates a user account. A "business" registration also creates the
// owned Business row from the extra fields.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if role != domain.RoleUser && role != domain.RoleBusiness {
		return nil, ErrInvalidRequest
	}
	if role == domain.RoleBusiness && strings.TrimSpace(req.BusinessName) == "" {
		return nil, ErrInvalidRequest
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if role == domain.RoleBusiness {
		business := &domain.Business{
			OwnerID:  user.ID,
			Name:     strings.TrimSpace(req.BusinessName),
			Location: req.Location,
			Website:  req.Website,
		}
		if err := s.businesses.Create(ctx, business); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Login checks credentials and issues an access token. Banned accounts are
// rejected with a dedicated error so the handler can say why.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsBanned {
		return nil, ErrUserBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		User:        user,
		RedirectTo:  ResolveLandingRoute(user.Role),
	}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
