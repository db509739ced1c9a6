package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ventas/pkg/jwt"
)

const secret = "secreto-de-prueba"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "pos-ventas"}), store
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Caja@POS.pe ", Password: "clave-segura", Name: "Caja 1"})
	require.NoError(t, err)
	assert.Equal(t, "caja@pos.pe", u.Email)
	assert.Equal(t, entity.RoleVendedor, u.Role)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "CAJA@pos.pe", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.pe", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.pe", Password: "suficiente", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.pe", Password: "suficiente", Role: entity.RoleAdmin})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.pe", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin_Errores(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@pos.pe", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@pos.pe", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@pos.pe", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	inactive := &entity.User{ID: "inactivo", Email: "off@pos.pe", Role: entity.RoleVendedor}
	hashed, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "tmp@pos.pe", Password: "clave-segura"})
	require.NoError(t, err)
	stored, err := store.Users().GetByID(ctx, hashed.ID)
	require.NoError(t, err)
	inactive.PasswordHash = stored.PasswordHash
	require.NoError(t, store.Users().Create(ctx, inactive))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "off@pos.pe", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestContextIdentity(t *testing.T) {
	store := memory.NewStore()
	identity := auth.NewContextIdentity(store.Users())
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{ID: "u1", Email: "u1@pos.pe", Active: true}))

	id, err := auth.ActorID(context.Background(), identity)
	require.NoError(t, err)
	assert.Empty(t, id, "sin usuario la operación es anónima")

	ctx := auth.WithUserID(context.Background(), "u1")
	assert.Equal(t, "u1", auth.UserIDFromContext(ctx))
	id, err = auth.ActorID(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	id, err = auth.ActorID(auth.WithUserID(context.Background(), "borrado"), identity)
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = auth.ActorID(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, id)
}
