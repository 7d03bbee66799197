package impl

import (
	"context"
	"log/slog"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminUserService implements the AdminUserUsecase interface.
type adminUserService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AdminUserServiceParams holds dependencies for adminUserService, injected by Fx.
type AdminUserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAdminUserService is the constructor for adminUserService.
func NewAdminUserService(params AdminUserServiceParams) usecase.AdminUserUsecase {
	return &adminUserService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		orderRepo: params.OrderRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *adminUserService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every account together with its order count.
func (srv *adminUserService) ListUsers(ctx context.Context) ([]*usecase.UserWithOrderCount, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	result := make([]*usecase.UserWithOrderCount, 0, len(users))
	for _, user := range users {
		count, countErr := srv.orderRepo.CountByUser(ctx, user.ID)
		if countErr != nil {
			return nil, errors.Wrap(countErr, "failed to count user orders")
		}

		result = append(result, &usecase.UserWithOrderCount{
			User:       user.Public(),
			OrderCount: count,
		})
	}

	return result, nil
}

// GetUserDetail returns one account with its order history.
func (srv *adminUserService) GetUserDetail(ctx context.Context, userID uuid.UUID) (*usecase.UserDetailOutput, error) {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return &usecase.UserDetailOutput{User: user.Public(), Orders: orders}, nil
}

// CreateUser creates an account on the admin path. Unlike self-service
// registration, no referral code is required.
func (srv *adminUserService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.PublicUser, error) {
	srv.log(ctx).Info("Admin creating user", slog.String("email", input.Email), slog.Any("role", input.Role))

	if input.Role != entity.RoleUser && input.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "role must be USER or ADMIN")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password for admin-created user")
	}

	var created *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		referralCode := input.ReferralCode
		if referralCode == "" {
			referralCode = entity.NewReferralCode()
		}

		newUser := &entity.User{
			Email:        input.Email,
			PasswordHash: hashedPassword,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Phone:        input.Phone,
			Address:      input.Address,
			City:         input.City,
			State:        input.State,
			Pincode:      input.Pincode,
			Role:         input.Role,
			IsActive:     true,
			ReferralCode: referralCode,
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user")
		}

		created = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Admin user creation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute admin user creation transaction")
	}

	return created.Public(), nil
}

// UpdateUser applies admin edits to an account. Email and password stay
// untouched on this path.
func (srv *adminUserService) UpdateUser(ctx context.Context, userID uuid.UUID, input *usecase.AdminUpdateUserInput) (*entity.PublicUser, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "admin user update failed")
			}

			return errors.Wrap(findErr, "failed to find user by id")
		}

		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Address != nil {
			user.Address = *input.Address
		}
		if input.City != nil {
			user.City = *input.City
		}
		if input.State != nil {
			user.State = *input.State
		}
		if input.Pincode != nil {
			user.Pincode = *input.Pincode
		}
		if input.Role != nil {
			if !input.Role.IsValid() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
			}
			user.Role = *input.Role
		}

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update user")
		}

		updated = user

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute admin user update transaction")
	}

	return updated.Public(), nil
}

// SetUserActive flips the soft-delete flag. Deactivated users fail
// authentication on their next request.
func (srv *adminUserService) SetUserActive(ctx context.Context, userID uuid.UUID, isActive bool) (*entity.PublicUser, error) {
	srv.log(ctx).Info("Setting user active flag", slog.Any("userID", userID), slog.Bool("isActive", isActive))

	return srv.mutateUser(ctx, userID, func(user *entity.User) {
		user.IsActive = isActive
	})
}

// SetUserFlagged marks or clears the moderation flag.
func (srv *adminUserService) SetUserFlagged(ctx context.Context, userID uuid.UUID, flagged bool) (*entity.PublicUser, error) {
	srv.log(ctx).Info("Setting user flagged state", slog.Any("userID", userID), slog.Bool("flagged", flagged))

	return srv.mutateUser(ctx, userID, func(user *entity.User) {
		user.Flagged = flagged
	})
}

// ResetUserPassword replaces an account's password hash.
func (srv *adminUserService) ResetUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	srv.log(ctx).Info("Admin resetting user password", slog.Any("userID", userID))

	hashedPassword, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	_, err = srv.mutateUser(ctx, userID, func(user *entity.User) {
		user.PasswordHash = hashedPassword
	})

	return err
}

// ListDeliveryPersonnel returns users holding the delivery role, for the
// assignment picker.
func (srv *adminUserService) ListDeliveryPersonnel(ctx context.Context) ([]*entity.PublicUser, error) {
	users, err := srv.userRepo.ListByRole(ctx, entity.RoleDelivery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivery personnel")
	}

	result := make([]*entity.PublicUser, 0, len(users))
	for _, user := range users {
		result = append(result, user.Public())
	}

	return result, nil
}

func (srv *adminUserService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

func (srv *adminUserService) mutateUser(ctx context.Context, userID uuid.UUID, mutate func(*entity.User)) (*entity.PublicUser, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user mutation failed")
			}

			return errors.Wrap(findErr, "failed to find user by id")
		}

		mutate(user)

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update user")
		}

		updated = user

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("User mutation failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user mutation transaction")
	}

	return updated.Public(), nil
}
