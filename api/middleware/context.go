package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/internal/villages"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxScope
	ctxVillage
)

// ScopeFrom returns the visibility scope seeded by the Auth middleware.
func ScopeFrom(ctx context.Context) (scope.Scope, bool) {
	sc, ok := ctx.Value(ctxScope).(scope.Scope)
	return sc, ok
}

// UserIDFrom returns the authenticated user's ID.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserID).(uuid.UUID)
	return id, ok
}

// VillageFrom returns the tenant village resolved from the request host.
func VillageFrom(ctx context.Context) (*villages.VillageDTO, bool) {
	village, ok := ctx.Value(ctxVillage).(*villages.VillageDTO)
	return village, ok
}
