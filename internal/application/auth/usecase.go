package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
	"github.com/gestorsoft/gestor-api/pkg/jwt"
)

// UseCase registra usuários e emite tokens de acesso.
type UseCase struct {
	users     repository.UserRepository
	centros   repository.CostCenterRepository
	secret    string
	issuer    string
	expMinute int
}

// NewUseCase constrói o caso de uso de autenticação.
func NewUseCase(users repository.UserRepository, centros repository.CostCenterRepository, secret, issuer string, expMinutes int) *UseCase {
	return &UseCase{users: users, centros: centros, secret: secret, issuer: issuer, expMinute: expMinutes}
}

// Register cria um usuário com senha bcrypt e devolve um token já emitido.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Nome == "" || email == "" || len(in.Senha) < 6 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleFinanceiro, entity.RoleOperacional:
	case "":
		in.Role = entity.RoleOperacional
	default:
		return nil, domain.ErrInvalidInput
	}

	existente, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var centroCusto *string
	if in.CentroCustoCode != "" {
		cc, err := uc.centros.GetByCode(in.CentroCustoCode)
		if err != nil {
			return nil, err
		}
		if cc == nil {
			return nil, domain.ErrNotFound
		}
		centroCusto = &cc.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:                  uuid.New().String(),
		Name:                in.Nome,
		Email:               email,
		PasswordHash:        string(hash),
		Role:                in.Role,
		DefaultCostCenterID: centroCusto,
		CreatedAt:           time.Now().UTC(),
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.secret, user.ID, user.Role, uc.issuer, uc.expMinute)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID, Role: user.Role}, nil
}

// Perfil devolve o usuário do token. O token pode sobreviver ao usuário,
// então a ausência aqui é ErrUserNotFound e não um erro interno.
func (uc *UseCase) Perfil(ctx context.Context, userID string) (*dto.PerfilResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.PerfilResponse{
		ID:            user.ID,
		Nome:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		CentroCustoID: user.DefaultCostCenterID,
		CriadoEm:      user.CreatedAt,
	}, nil
}

// Login valida as credenciais e emite o token.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Senha)) != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.secret, user.ID, user.Role, uc.issuer, uc.expMinute)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID, Role: user.Role}, nil
}
