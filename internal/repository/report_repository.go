package repository

import (
	"github.com/linoyezra1/learning-system/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

// ListByUser returns metadata only; the snapshot stays out of the list
// payload.
func (r *ReportRepository) ListByUser(userID uint) ([]model.Report, error) {
	var reports []model.Report
	err := r.DB.
		Select("id", "user_id", "report_type", "generated_at", "expires_at", "created_at", "updated_at").
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) FindByID(id uint) (*model.Report, error) {
	var report model.Report
	err := r.DB.First(&report, id).Error
	return &report, err
}
