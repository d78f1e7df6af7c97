package repository

import (
	"github.com/linoyezra1/learning-system/internal/model"

	"gorm.io/gorm"
)

type SlideRepository struct {
	DB *gorm.DB
}

func NewSlideRepository(db *gorm.DB) *SlideRepository {
	return &SlideRepository{DB: db}
}

func (r *SlideRepository) FindByID(id uint) (*model.Slide, error) {
	var slide model.Slide
	err := r.DB.First(&slide, id).Error
	return &slide, err
}

func (r *SlideRepository) ListByModule(moduleID uint) ([]model.Slide, error) {
	var slides []model.Slide
	err := r.DB.Where("module_id = ?", moduleID).
		Order("order_index ASC").
		Find(&slides).Error
	return slides, err
}

func (r *SlideRepository) Create(slide *model.Slide) error {
	return r.DB.Create(slide).Error
}
