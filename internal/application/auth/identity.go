package auth

import (
	"context"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

// IdentityProvider resuelve el usuario que ejecuta la operación.
// Un resultado nil sin error significa operación anónima.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*entity.User, error)
}

type userIDKey struct{}

// WithUserID guarda el id del usuario autenticado en el contexto.
func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext devuelve el id guardado por WithUserID ("" si no hay).
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// ContextIdentity implementa IdentityProvider leyendo el id del contexto y cargando el usuario.
type ContextIdentity struct {
	users repository.UserRepository
}

// NewContextIdentity construye el proveedor.
func NewContextIdentity(users repository.UserRepository) *ContextIdentity {
	return &ContextIdentity{users: users}
}

// CurrentUser devuelve el usuario del contexto, o nil si la operación es anónima
// o el usuario ya no existe.
func (p *ContextIdentity) CurrentUser(ctx context.Context) (*entity.User, error) {
	id := UserIDFromContext(ctx)
	if id == "" {
		return nil, nil
	}
	return p.users.GetByID(ctx, id)
}

// ActorID devuelve el id del usuario actual o "" si es anónimo.
func ActorID(ctx context.Context, p IdentityProvider) (string, error) {
	if p == nil {
		return "", nil
	}
	u, err := p.CurrentUser(ctx)
	if err != nil || u == nil {
		return "", err
	}
	return u.ID, nil
}
