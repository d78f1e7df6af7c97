package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"
	"github.com/linoyezra1/learning-system/pkg/monitoring"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// Reports are retained for three years after generation. They are never
// deleted on expiry, only flagged as expired in listings.
const reportRetention = 3 // years

// ReportSnapshot is the full data a report was rendered from, archived
// verbatim alongside the PDF so the document can always be re-derived.
type ReportSnapshot struct {
	User struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
	} `json:"user"`
	CourseTitle          string                 `json:"courseTitle"`
	TotalSlides          int                    `json:"totalSlides"`
	CompletedSlides      int                    `json:"completedSlides"`
	CompletionPercentage float64                `json:"completionPercentage"`
	TotalTimeSpent       int                    `json:"totalTimeSpent"`
	LastAccessed         *time.Time             `json:"lastAccessed"`
	Modules              []ModuleReport         `json:"modules"`
	GeneratedAt          time.Time              `json:"generatedAt"`
}

type ModuleReport struct {
	Title                string  `json:"title"`
	TotalSlides          int     `json:"totalSlides"`
	CompletedSlides      int     `json:"completedSlides"`
	CompletionPercentage float64 `json:"completionPercentage"`
	TimeSpent            int     `json:"timeSpent"`
}

// ReportMeta is the listing payload; the snapshot itself stays out.
type ReportMeta struct {
	ID          uint      `json:"id"`
	ReportType  string    `json:"reportType"`
	GeneratedAt time.Time `json:"generatedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Expired     bool      `json:"expired"`
}

type ReportService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	ReportRepo   *repository.ReportRepository
	CourseID     uint
}

func NewReportService(
	userRepo *repository.UserRepository,
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	reportRepo *repository.ReportRepository,
	courseID uint,
) *ReportService {
	return &ReportService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		ReportRepo:   reportRepo,
		CourseID:     courseID,
	}
}

// BuildSnapshot loads everything the report needs in one place; any
// load failure aborts generation before anything is rendered or saved.
func (s *ReportService) BuildSnapshot(userID uint) (*ReportSnapshot, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	snapshot := &ReportSnapshot{GeneratedAt: time.Now()}
	snapshot.User.ID = user.ID
	snapshot.User.Username = user.Username
	snapshot.User.FullName = user.FullName

	if course, err := s.CourseRepo.FindByID(s.CourseID); err == nil {
		snapshot.CourseTitle = course.Title
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	up, err := s.ProgressRepo.GetUserProgress(userID, s.CourseID)
	if err == nil {
		snapshot.TotalSlides = up.TotalSlides
		snapshot.CompletedSlides = up.CompletedSlides
		snapshot.TotalTimeSpent = up.TotalTimeSpent
		snapshot.LastAccessed = &up.LastAccessed
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	snapshot.CompletionPercentage = CompletionPercentage(snapshot.CompletedSlides, snapshot.TotalSlides)

	breakdown, err := s.ProgressRepo.ModuleBreakdown(userID, s.CourseID, true)
	if err != nil {
		return nil, err
	}
	for _, m := range breakdown {
		snapshot.Modules = append(snapshot.Modules, ModuleReport{
			Title:                m.ModuleTitle,
			TotalSlides:          m.TotalSlides,
			CompletedSlides:      m.CompletedSlides,
			CompletionPercentage: CompletionPercentage(m.CompletedSlides, m.TotalSlides),
			TimeSpent:            m.TimeSpent,
		})
	}

	return snapshot, nil
}

// RenderPDF renders the snapshot to an A4 document. The PDF creation
// date is pinned to the snapshot timestamp, so the same snapshot always
// renders to the same bytes.
func (s *ReportService) RenderPDF(snapshot *ReportSnapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(snapshot.GeneratedAt)
	pdf.SetModificationDate(snapshot.GeneratedAt)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Course Completion Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Username: "+snapshot.User.Username, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Full name: "+snapshot.User.FullName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Course: "+snapshot.CourseTitle, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Generated: "+snapshot.GeneratedAt.Format(util.TimeFormat), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "Overall Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total slides: %d", snapshot.TotalSlides), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Completed slides: %d", snapshot.CompletedSlides), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Completion: %.2f%%", snapshot.CompletionPercentage), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Total study time: %d minutes", snapshot.TotalTimeSpent/60), "", 1, "L", false, 0, "")
	if snapshot.LastAccessed != nil {
		pdf.CellFormat(0, 7, "Last accessed: "+snapshot.LastAccessed.Format(util.TimeFormat), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if len(snapshot.Modules) > 0 {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, "Progress by Module", "", 1, "L", false, 0, "")

		for i, m := range snapshot.Modules {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", i+1, m.Title), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			pdf.CellFormat(0, 6, fmt.Sprintf("   Completed: %d of %d", m.CompletedSlides, m.TotalSlides), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, 6, fmt.Sprintf("   Completion: %.2f%%", m.CompletionPercentage), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, 6, fmt.Sprintf("   Time studied: %d minutes", m.TimeSpent/60), "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "This report certifies completion of the online course material.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "It is retained in the system for at least 3 years.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Generate builds the snapshot, renders the PDF and archives a
// write-once Report row with the serialized snapshot and its retention
// expiry.
func (s *ReportService) Generate(userID uint) (*model.Report, []byte, error) {
	snapshot, err := s.BuildSnapshot(userID)
	if err != nil {
		return nil, nil, err
	}

	pdfBytes, err := s.RenderPDF(snapshot)
	if err != nil {
		return nil, nil, err
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, nil, err
	}

	report := &model.Report{
		UserID:      userID,
		ReportData:  string(raw),
		ReportType:  "completion",
		GeneratedAt: snapshot.GeneratedAt,
		ExpiresAt:   snapshot.GeneratedAt.AddDate(reportRetention, 0, 0),
	}
	if err := s.ReportRepo.Create(report); err != nil {
		return nil, nil, err
	}
	monitoring.ReportsGenerated.Inc()

	return report, pdfBytes, nil
}

func (s *ReportService) ListForUser(userID uint) ([]ReportMeta, error) {
	reports, err := s.ReportRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	metas := make([]ReportMeta, 0, len(reports))
	for _, r := range reports {
		metas = append(metas, ReportMeta{
			ID:          r.ID,
			ReportType:  r.ReportType,
			GeneratedAt: r.GeneratedAt,
			ExpiresAt:   r.ExpiresAt,
			Expired:     r.ExpiresAt.Before(now),
		})
	}
	return metas, nil
}

func (s *ReportService) Get(id uint) (*model.Report, error) {
	report, err := s.ReportRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrReportNotFound
	}
	return report, err
}
