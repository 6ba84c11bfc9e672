package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorsoft/gestor-api/internal/application/auth"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/infrastructure/memoria"
	pkgjwt "github.com/gestorsoft/gestor-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "gestor-api-test"
)

func newUseCase() *auth.UseCase {
	store := memoria.NewStore()
	return auth.NewUseCase(memoria.NewUserRepository(store), memoria.NewCostCenterRepository(store),
		testSecret, testIssuer, 60)
}

func TestRegister_CriaUsuarioEEmiteToken(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Nome:  "Ana",
		Email: "  ANA@Empresa.com ",
		Senha: "segredo123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleOperacional, resp.Role, "papel vazio assume operacional")

	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, userID)
	assert.Equal(t, resp.Role, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Nome: "Ana", Email: "ana@empresa.com", Senha: "segredo123"})
	require.NoError(t, err)

	// O email é normalizado antes da comparação.
	_, err = uc.Register(ctx, dto.RegisterRequest{Nome: "Outra", Email: "ANA@empresa.com", Senha: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validacoes(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Nome: "Ana", Email: "ana@empresa.com", Senha: "curta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "senha com menos de 6 caracteres")

	_, err = uc.Register(ctx, dto.RegisterRequest{Nome: "", Email: "ana@empresa.com", Senha: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome vazio")

	_, err = uc.Register(ctx, dto.RegisterRequest{Nome: "Ana", Email: "ana@empresa.com", Senha: "segredo123", Role: "super"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "papel desconhecido")

	_, err = uc.Register(ctx, dto.RegisterRequest{Nome: "Ana", Email: "ana@empresa.com", Senha: "segredo123", CentroCustoCode: "CC-X"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "centro de custo inexistente")
}

func TestLogin_CredenciaisValidasEInvalidas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{
		Nome: "Ana", Email: "ana@empresa.com", Senha: "segredo123", Role: entity.RoleFinanceiro,
	})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "Ana@Empresa.com", Senha: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleFinanceiro, resp.Role)
	assert.NotEmpty(t, resp.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@empresa.com", Senha: "errada-errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "senha incorreta")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@empresa.com", Senha: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuário inexistente não vaza informação")
}

func TestPerfil(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{
		Nome: "Ana", Email: "ana@empresa.com", Senha: "segredo123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	perfil, err := uc.Perfil(ctx, reg.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", perfil.Nome)
	assert.Equal(t, "ana@empresa.com", perfil.Email)
	assert.Equal(t, entity.RoleAdmin, perfil.Role)

	// Token válido apontando para usuário removido.
	_, err = uc.Perfil(ctx, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
