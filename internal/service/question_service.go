package service

import (
	"time"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"

	"gorm.io/gorm"
)

// QuestionService covers two separate things that must not be mixed up:
// multiple-choice practice questions (self-check with an attempt log)
// and free-text student questions answered by an instructor.
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

// AnswerResult is returned after every practice submission; the correct
// answer and explanation are revealed regardless of the outcome.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

func (s *QuestionService) ListPractice(moduleID, slideID uint) ([]model.PracticeQuestion, error) {
	return s.QuestionRepo.ListPractice(moduleID, slideID)
}

// SubmitPracticeAnswer grades by exact key match and appends the
// attempt. Resubmission is allowed and never overwrites earlier
// attempts.
func (s *QuestionService) SubmitPracticeAnswer(userID, questionID uint, answer string) (*AnswerResult, error) {
	question, err := s.QuestionRepo.FindPracticeByID(questionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	isCorrect := answer == question.CorrectAnswer

	attempt := &model.UserAnswer{
		UserID:     userID,
		QuestionID: questionID,
		Answer:     answer,
		IsCorrect:  isCorrect,
		AnsweredAt: time.Now(),
	}
	if err := s.QuestionRepo.CreateAnswer(attempt); err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct:       isCorrect,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}, nil
}

// Ask files a new instructor question in pending state, optionally tied
// to a slide.
func (s *QuestionService) Ask(userID uint, slideID *uint, question string) (*model.StudentQuestion, error) {
	sq := &model.StudentQuestion{
		UserID:   userID,
		SlideID:  slideID,
		Question: question,
		Status:   model.QuestionPending,
	}
	if err := s.QuestionRepo.CreateStudentQuestion(sq); err != nil {
		return nil, err
	}
	return sq, nil
}

func (s *QuestionService) CreatePractice(question *model.PracticeQuestion) error {
	return s.QuestionRepo.CreatePractice(question)
}

func (s *QuestionService) MyQuestions(userID uint) ([]model.StudentQuestionView, error) {
	return s.QuestionRepo.ListByUser(userID)
}

func (s *QuestionService) AllQuestions(status model.QuestionStatus) ([]model.InstructorQuestionView, error) {
	return s.QuestionRepo.ListAll(status)
}

// AnswerStudentQuestion performs the atomic pending->answered
// transition. The update is unconditional: answering an already-answered
// question overwrites the previous answer.
func (s *QuestionService) AnswerStudentQuestion(questionID, instructorID uint, answer string) error {
	affected, err := s.QuestionRepo.AnswerStudentQuestion(questionID, instructorID, answer)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrQuestionNotFound
	}
	return nil
}
