package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/grocery/internal/domain/model"
	"gorm.io/gorm"
)

// ErrSectionNotFound 分類不存在
var ErrSectionNotFound = errors.New("section not found")

// ISectionRepository Section 相關操作介面
type ISectionRepository interface {
	CreateSection(ctx context.Context, section *model.Section) error
	GetSectionByID(ctx context.Context, id uint) (*model.Section, error)
	GetSectionByName(ctx context.Context, name string) (*model.Section, error)
	GetAllSections(ctx context.Context) ([]model.Section, error)
	UpdateSection(ctx context.Context, section *model.Section) error
	HardDeleteSection(ctx context.Context, id uint) error
}

type SectionRepo struct {
	db *DbDao
}

func NewSectionRepo(db *DbDao) *SectionRepo {
	return &SectionRepo{db: db}
}

func (s *SectionRepo) CreateSection(ctx context.Context, section *model.Section) error {
	return s.db.WithContext(ctx).Create(section).Error
}

func (s *SectionRepo) GetSectionByID(ctx context.Context, id uint) (*model.Section, error) {
	var section model.Section
	err := s.db.WithContext(ctx).First(&section, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *SectionRepo) GetSectionByName(ctx context.Context, name string) (*model.Section, error) {
	var section model.Section
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&section).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *SectionRepo) GetAllSections(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	err := s.db.WithContext(ctx).Find(&sections).Error
	return sections, err
}

func (s *SectionRepo) UpdateSection(ctx context.Context, section *model.Section) error {
	return s.db.WithContext(ctx).Save(section).Error
}

// Delete - 硬刪除分類，連同分類下的商品一起刪 (對齊原本remove_category行為)
func (s *SectionRepo) HardDeleteSection(ctx context.Context, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Unscoped().
			Where("section_id = ?", id).
			Delete(&model.Product{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Unscoped().Delete(&model.Section{}, id).Error
	})
}

var _ ISectionRepository = (*SectionRepo)(nil)
