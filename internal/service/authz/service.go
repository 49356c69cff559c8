package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// systemUser вызывающий для внутренних задач (sweep); через HTTP не достижим,
// middleware пропускает только положительные ID
var systemUser = domain.User{ID: domain.SystemUserID, Name: "system", Role: domain.RoleAdmin}

// Gate единая точка проверки прав
// Роль всегда читается из хранилища; при вызове внутри транзакции чтение идёт в ней же
type Gate struct {
	users  UserRepository
	logger Logger
}

func NewGate(users UserRepository, logger Logger) *Gate {
	return &Gate{users: users, logger: logger}
}

// Require проверяет, что роль вызывающего входит в roles, и возвращает пользователя
func (g *Gate) Require(ctx context.Context, userID int64, roles ...domain.Role) (*domain.User, error) {
	user, err := g.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Role.In(roles...) {
		g.logger.Warn("Authz: user=%d role=%s denied, required=%v", userID, user.Role, roles)
		return nil, fmt.Errorf("%w: user=%d role=%s", ErrForbidden, userID, user.Role)
	}
	return user, nil
}

// RequireOwnerOr пропускает владельца записи (ownerID) или пользователя с одной из ролей
func (g *Gate) RequireOwnerOr(ctx context.Context, userID, ownerID int64, roles ...domain.Role) (*domain.User, error) {
	user, err := g.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ID == ownerID || user.Role.In(roles...) {
		return user, nil
	}

	g.logger.Warn("Authz: user=%d is not owner=%d and role=%s denied", userID, ownerID, user.Role)
	return nil, fmt.Errorf("%w: user=%d is not the owner", ErrForbidden, userID)
}

func (g *Gate) load(ctx context.Context, userID int64) (*domain.User, error) {
	if userID == domain.SystemUserID {
		u := systemUser
		return &u, nil
	}
	if userID < 0 {
		return nil, fmt.Errorf("%w: user=%d", ErrUnknownCaller, userID)
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			g.logger.Warn("Authz: user=%d not found", userID)
			return nil, fmt.Errorf("%w: user=%d", ErrUnknownCaller, userID)
		}
		g.logger.Error("Authz: failed to load user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: load user: %w", ErrInternal, err)
	}
	return user, nil
}
