package postgres

import (
	"context"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// referralCodeRepository implements the repository.ReferralCodeRepository interface using GORM.
type referralCodeRepository struct {
	db *gorm.DB
}

// NewReferralCodeRepository is the constructor for referralCodeRepository.
func NewReferralCodeRepository(db *gorm.DB) repository.ReferralCodeRepository {
	return &referralCodeRepository{
		db: db,
	}
}

// Create persists a new registry code.
func (repo *referralCodeRepository) Create(ctx context.Context, code *entity.ReferralCode) error {
	codeM := fromReferralCodeDomain(code)

	if err := repo.db.WithContext(ctx).Create(codeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrReferralCodeExists.WrapMessage("code already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create referral code")
	}

	code.ID = codeM.ID
	code.CreatedAt = codeM.CreatedAt
	code.UpdatedAt = codeM.UpdatedAt

	return nil
}

// FindByID retrieves a registry code by ID.
func (repo *referralCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReferralCode, error) {
	var codeM model.ReferralCodeModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&codeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReferralCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find referral code by id")
	}

	return toReferralCodeDomain(&codeM), nil
}

// FindByCode retrieves a registry code by its code string.
func (repo *referralCodeRepository) FindByCode(ctx context.Context, code string) (*entity.ReferralCode, error) {
	var codeM model.ReferralCodeModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("code = ?", code).
		First(&codeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReferralCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find referral code")
	}

	return toReferralCodeDomain(&codeM), nil
}

// Update modifies an existing registry code.
func (repo *referralCodeRepository) Update(ctx context.Context, code *entity.ReferralCode) error {
	codeM := fromReferralCodeDomain(code)

	if err := repo.db.WithContext(ctx).Save(codeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrReferralCodeExists.WrapMessage("code already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update referral code")
	}

	code.UpdatedAt = codeM.UpdatedAt

	return nil
}

// ListAll returns every registry code with owners populated, newest first.
func (repo *referralCodeRepository) ListAll(ctx context.Context) ([]*entity.ReferralCode, error) {
	var codeModels []*model.ReferralCodeModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&codeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list referral codes")
	}

	codes := make([]*entity.ReferralCode, 0, len(codeModels))
	for _, codeM := range codeModels {
		codes = append(codes, toReferralCodeDomain(codeM))
	}

	return codes, nil
}

// --- Mapper Functions ---

// toReferralCodeDomain converts a GORM ReferralCodeModel to a domain ReferralCode entity.
func toReferralCodeDomain(data *model.ReferralCodeModel) *entity.ReferralCode {
	if data == nil {
		return nil
	}

	code := &entity.ReferralCode{
		ID:         data.ID,
		Code:       data.Code,
		UserID:     data.UserID,
		IsActive:   data.IsActive,
		UsageCount: data.UsageCount,
		MaxUsage:   data.MaxUsage,
		ExpiresAt:  data.ExpiresAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	if data.User != nil {
		code.User = toUserDomain(data.User).Public()
	}

	return code
}

// fromReferralCodeDomain converts a domain ReferralCode entity to a GORM ReferralCodeModel.
func fromReferralCodeDomain(data *entity.ReferralCode) *model.ReferralCodeModel {
	if data == nil {
		return nil
	}

	return &model.ReferralCodeModel{
		ID:         data.ID,
		Code:       data.Code,
		UserID:     data.UserID,
		IsActive:   data.IsActive,
		UsageCount: data.UsageCount,
		MaxUsage:   data.MaxUsage,
		ExpiresAt:  data.ExpiresAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
