package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/shared"
)

// UserService handles user account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Create creates a new user account. Admin only. An unspecified role
// defaults to viewer.
func (s *UserService) Create(ctx context.Context, actor identity.Role, req CreateUserRequest) (*UserInfo, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, identity.ParseRole(req.Role))
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	info := ToUserInfo(user)
	return &info, nil
}

// Update updates a user's display name or role. Admin only.
func (s *UserService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdateUserRequest) (*UserInfo, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.ParseRole(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// List returns users matching the filter. Admin only.
func (s *UserService) List(ctx context.Context, actor identity.Role, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = ToUserInfo(&users[i])
	}
	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Unlock clears a user's failed-login lockout. Admin only.
func (s *UserService) Unlock(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Unlock(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Deactivate disables a user account. Admin only.
func (s *UserService) Deactivate(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}
