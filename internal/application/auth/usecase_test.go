package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de CustomerRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byEmail map[string]*entity.Customer
	findErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byEmail: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
	r.byEmail[customer.Email] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindByEmail(email string) (*entity.Customer, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byEmail[email], nil
}

func newTestAuthUseCase(repo *fakeCustomerRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "tienda-api-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaClienteConRolCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newTestAuthUseCase(repo)

	out, err := uc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "super-secreta",
		Name:     "Ana",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, entity.RoleCustomer, out.Role)
	assert.Equal(t, "active", out.Status)

	stored := repo.byEmail["ana@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secreta")),
		"la password debe guardarse hasheada con bcrypt")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newTestAuthUseCase(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Un fallo de almacenamiento en la búsqueda por email debe propagarse:
// nunca debe leerse como "el email está libre".
func TestRegister_FalloDeLectura_SePropaga(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.findErr = errors.New("connection refused")
	uc := newTestAuthUseCase(repo)

	out, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "super-secreta"})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.byEmail, "con la lectura caída no debe crearse ningún cliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_EmiteToken(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newTestAuthUseCase(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "super-secreta"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "super-secreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.Customer.Email)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newTestAuthUseCase(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ClienteInexistente(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newTestAuthUseCase(repo)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLogin_CuentaSuspendida(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newTestAuthUseCase(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "super-secreta"})
	require.NoError(t, err)
	repo.byEmail["ana@example.com"].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "super-secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
