package repository

import (
	"time"

	"github.com/linoyezra1/learning-system/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ListPractice filters by module and/or slide when given.
func (r *QuestionRepository) ListPractice(moduleID, slideID uint) ([]model.PracticeQuestion, error) {
	query := r.DB.Model(&model.PracticeQuestion{})
	if moduleID != 0 {
		query = query.Where("module_id = ?", moduleID)
	}
	if slideID != 0 {
		query = query.Where("slide_id = ?", slideID)
	}

	var questions []model.PracticeQuestion
	err := query.Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindPracticeByID(id uint) (*model.PracticeQuestion, error) {
	var question model.PracticeQuestion
	err := r.DB.First(&question, id).Error
	return &question, err
}

func (r *QuestionRepository) CreatePractice(q *model.PracticeQuestion) error {
	return r.DB.Create(q).Error
}

// CreateAnswer appends an attempt; resubmissions never overwrite.
func (r *QuestionRepository) CreateAnswer(answer *model.UserAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *QuestionRepository) CreateStudentQuestion(q *model.StudentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) ListByUser(userID uint) ([]model.StudentQuestionView, error) {
	var rows []model.StudentQuestionView
	err := r.DB.Raw(`
		SELECT sq.id, sq.user_id, sq.slide_id, sq.question, sq.status,
		       sq.answer, sq.answered_by, sq.answered_at, sq.created_at,
		       s.title AS slide_title,
		       m.title AS module_title
		FROM student_questions sq
		LEFT JOIN slides s  ON s.id = sq.slide_id
		LEFT JOIN modules m ON m.id = s.module_id
		WHERE sq.user_id = ? AND sq.deleted_at IS NULL
		ORDER BY sq.created_at DESC`,
		userID,
	).Scan(&rows).Error
	return rows, err
}

func (r *QuestionRepository) ListAll(status model.QuestionStatus) ([]model.InstructorQuestionView, error) {
	query := `
		SELECT sq.id, sq.user_id, sq.slide_id, sq.question, sq.status,
		       sq.answer, sq.answered_by, sq.answered_at, sq.created_at,
		       s.title     AS slide_title,
		       m.title     AS module_title,
		       u.full_name AS student_name,
		       u.username
		FROM student_questions sq
		JOIN users u ON u.id = sq.user_id
		LEFT JOIN slides s  ON s.id = sq.slide_id
		LEFT JOIN modules m ON m.id = s.module_id
		WHERE sq.deleted_at IS NULL`
	args := []interface{}{}

	if status != "" {
		query += " AND sq.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY sq.created_at DESC"

	var rows []model.InstructorQuestionView
	err := r.DB.Raw(query, args...).Scan(&rows).Error
	return rows, err
}

// AnswerStudentQuestion sets the answer, answerer, status and timestamp
// together. The update is unconditional on current status, so an
// instructor may overwrite an earlier answer. Returns the number of
// rows hit so the caller can 404 on an unknown id.
func (r *QuestionRepository) AnswerStudentQuestion(questionID, instructorID uint, answer string) (int64, error) {
	now := time.Now()
	res := r.DB.Model(&model.StudentQuestion{}).
		Where("id = ?", questionID).
		Updates(map[string]interface{}{
			"answer":      answer,
			"answered_by": instructorID,
			"status":      model.QuestionAnswered,
			"answered_at": now,
		})
	return res.RowsAffected, res.Error
}
