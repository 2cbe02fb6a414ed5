//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the external auth service does.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(secret string) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(secret)}
}

func (h *JWTHelper) Service() *jwt.Service {
	return h.service
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
