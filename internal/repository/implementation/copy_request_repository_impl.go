package implementation

import (
	"context"

	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/mapper"
	"ai-copychat-be/internal/model"
	"ai-copychat-be/internal/repository/contract"
	"ai-copychat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CopyRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CopyMapper
}

func NewCopyRequestRepository(db *gorm.DB) contract.CopyRequestRepository {
	return &CopyRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewCopyMapper(),
	}
}

func (r *CopyRequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CopyRequestRepositoryImpl) Create(ctx context.Context, request *entity.CopyRequest) error {
	m := r.mapper.RequestToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.RequestToEntity(m)
	return nil
}

func (r *CopyRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CopyRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type UsageEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CopyMapper
}

func NewUsageEventRepository(db *gorm.DB) contract.UsageEventRepository {
	return &UsageEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewCopyMapper(),
	}
}

func (r *UsageEventRepositoryImpl) Create(ctx context.Context, event *entity.UsageEvent) error {
	m := r.mapper.UsageEventToModel(event)
	return r.db.WithContext(ctx).Create(m).Error
}
