package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/pkg/auth"
	"go.uber.org/zap"
)

//go:generate mockgen -source=authservice.go -destination=authservice_mock.go -package=authservice

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type LedgerService interface {
	GetOrCreate(ctx context.Context, ownerID int) (*domain.Ledger, error)
}

var (
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
	ErrWeakPassword       = errors.New("password does not meet the minimum requirements")
)

type Service struct {
	userRepo      Repo
	ledgerService LedgerService
	hashService   auth.HashServiceInterface
	jwtService    auth.JWTServiceInterface
}

func New(repo Repo, ledgerService LedgerService, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:      repo,
		ledgerService: ledgerService,
		hashService:   hashService,
		jwtService:    jwtService,
	}
}

func (s *Service) Register(ctx context.Context, login, password, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleCook
	}
	if role != domain.RoleCook && role != domain.RoleAdmin {
		return nil, ErrUnknownRole
	}

	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", login))
		return nil, ErrLoginTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, ErrWeakPassword
		}
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Login:        login,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	if newUser.Role == domain.RoleCook {
		if _, err := s.ledgerService.GetOrCreate(ctx, newUser.ID); err != nil {
			zap.L().Error("can't create ledger: ", zap.Error(err))
			return nil, err
		}
	}

	zap.L().Info("user successfully registered", zap.String("login", login), zap.String("role", role))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID int, role string) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(userID, role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
