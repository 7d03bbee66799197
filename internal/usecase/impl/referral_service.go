package impl

import (
	"context"
	"log/slog"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// referralService implements the ReferralUsecase interface.
type referralService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	referralRepo repository.ReferralCodeRepository
	logger       *slog.Logger
}

// ReferralServiceParams holds dependencies for referralService, injected by Fx.
type ReferralServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	ReferralRepo repository.ReferralCodeRepository
	Logger       *slog.Logger
}

// NewReferralService is the constructor for referralService.
func NewReferralService(params ReferralServiceParams) usecase.ReferralUsecase {
	return &referralService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		referralRepo: params.ReferralRepo,
		logger:       params.Logger,
	}
}

func (srv *referralService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetMyCode returns the caller's own referral code.
func (srv *referralService) GetMyCode(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", errors.Wrap(domainerrors.ErrUserNotFound, "referral code lookup failed")
		}

		return "", errors.Wrap(err, "failed to find user by id")
	}

	return user.ReferralCode, nil
}

// GetMyStats returns the caller's direct referrals and their count.
func (srv *referralService) GetMyStats(ctx context.Context, userID uuid.UUID) (*entity.ReferralStats, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "referral stats lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users for referral stats")
	}

	referred := make([]*entity.PublicUser, 0)
	for _, candidate := range users {
		if candidate.ReferredBy == user.ReferralCode {
			referred = append(referred, candidate.Public())
		}
	}

	return &entity.ReferralStats{
		ReferralCode:   user.ReferralCode,
		TotalReferrals: len(referred),
		ReferredUsers:  referred,
	}, nil
}

// BuildTree reconstructs the referral forest from the full user snapshot.
func (srv *referralService) BuildTree(ctx context.Context) ([]*entity.ReferralNode, error) {
	srv.log(ctx).Debug("Building referral tree")

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users for referral tree")
	}

	return entity.BuildReferralForest(users), nil
}

// CreateCode registers a managed code in the registry for an existing user.
func (srv *referralService) CreateCode(ctx context.Context, input *usecase.CreateReferralCodeInput) (*entity.ReferralCode, error) {
	srv.log(ctx).Info("Creating referral registry code", slog.Any("userID", input.UserID))

	var created *entity.ReferralCode
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		referralRepo := repoFactory.ReferralRepo()

		owner, findErr := userRepo.FindByID(ctx, input.UserID)
		if errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "registry code owner not found")
		}
		if findErr != nil {
			return errors.Wrap(findErr, "failed to find registry code owner")
		}

		code := input.Code
		if code == "" {
			code = entity.NewReferralCode()
		}

		_, findErr = referralRepo.FindByCode(ctx, code)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrReferralCodeExists, "duplicate registry code")
		}
		if !errors.Is(findErr, repository.ErrReferralCodeNotFound) {
			return errors.Wrap(findErr, "failed to check registry code uniqueness")
		}

		record := &entity.ReferralCode{
			Code:      code,
			UserID:    owner.ID,
			IsActive:  true,
			MaxUsage:  input.MaxUsage,
			ExpiresAt: input.ExpiresAt,
		}

		if createErr := referralRepo.Create(ctx, record); createErr != nil {
			return errors.Wrap(createErr, "failed to create registry code")
		}

		created = record

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registry code creation failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registry code creation transaction")
	}

	return created, nil
}

// ListCodes returns every registry code with owners populated.
func (srv *referralService) ListCodes(ctx context.Context) ([]*entity.ReferralCode, error) {
	codes, err := srv.referralRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list registry codes")
	}

	return codes, nil
}

// UpdateCode applies partial edits to a registry code.
func (srv *referralService) UpdateCode(ctx context.Context, codeID uuid.UUID, input *usecase.UpdateReferralCodeInput) (*entity.ReferralCode, error) {
	var updated *entity.ReferralCode
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		referralRepo := repoFactory.ReferralRepo()

		record, findErr := referralRepo.FindByID(ctx, codeID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrReferralCodeNotFound) {
				return errors.Wrap(domainerrors.ErrReferralCodeNotFound, "registry code update failed")
			}

			return errors.Wrap(findErr, "failed to find registry code by id")
		}

		if input.IsActive != nil {
			record.IsActive = *input.IsActive
		}
		if input.MaxUsage != nil {
			record.MaxUsage = input.MaxUsage
		}
		if input.ExpiresAt != nil {
			record.ExpiresAt = input.ExpiresAt
		}

		if updateErr := referralRepo.Update(ctx, record); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update registry code")
		}

		updated = record

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute registry code update transaction")
	}

	return updated, nil
}
