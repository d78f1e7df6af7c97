package controller

import (
	"errors"
	"strings"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// ListPractice godoc
// @Summary List practice questions
// @Description Filters by moduleId or slideId query params. Correct
// answers are never included in the listing.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param moduleId query int false "module id"
// @Param slideId query int false "slide id"
// @Success 200 {array} model.PracticeQuestion
// @Router /api/questions [get]
func (c *QuestionController) ListPractice(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Query("moduleId"))
	slideID := util.MustParseUint(ctx.Query("slideId"))

	questions, err := c.QuestionService.ListPractice(moduleID, slideID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת שאלות התרגול", err)
		return
	}
	util.Success(ctx, questions)
}

type practiceAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitPracticeAnswer godoc
// @Summary Answer a practice question
// @Description Grades the answer, records the attempt, and reveals the
// correct answer and explanation regardless of the result.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "question id"
// @Param body body practiceAnswerRequest true "answer"
// @Success 200 {object} service.AnswerResult
// @Failure 404 {object} object
// @Router /api/questions/{questionId}/answer [post]
func (c *QuestionController) SubmitPracticeAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	questionID, err := util.ParseUintParam(ctx, "questionId")
	if err != nil {
		util.BadRequest(ctx, "מזהה שאלה לא תקין")
		return
	}

	var req practiceAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא לבחור תשובה")
		return
	}

	result, err := c.QuestionService.SubmitPracticeAnswer(claims.UserID, questionID, req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "שאלה לא נמצאה")
		} else {
			util.LogInternalError(ctx, "שגיאה בבדיקת התשובה", err)
		}
		return
	}
	util.Success(ctx, result)
}

type createPracticeRequest struct {
	ModuleID      *uint             `json:"moduleId"`
	SlideID       *uint             `json:"slideId"`
	Question      string            `json:"question" binding:"required"`
	Options       map[string]string `json:"options" binding:"required"`
	CorrectAnswer string            `json:"correctAnswer" binding:"required"`
	Explanation   string            `json:"explanation"`
}

// CreatePractice godoc
// @Summary Create a practice question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createPracticeRequest true "question"
// @Success 200 {object} object
// @Router /api/questions/practice [post]
func (c *QuestionController) CreatePractice(ctx *gin.Context) {
	var req createPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא למלא שאלה, אפשרויות ותשובה נכונה")
		return
	}
	if req.ModuleID == nil && req.SlideID == nil {
		util.BadRequest(ctx, "נא לשייך את השאלה לנושא או לשקף")
		return
	}
	if _, ok := req.Options[req.CorrectAnswer]; !ok {
		util.BadRequest(ctx, "התשובה הנכונה חייבת להיות אחת מהאפשרויות")
		return
	}

	question := &model.PracticeQuestion{
		ModuleID:      req.ModuleID,
		SlideID:       req.SlideID,
		Question:      req.Question,
		Options:       model.OptionMap(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
	if err := c.QuestionService.CreatePractice(question); err != nil {
		util.LogInternalError(ctx, "שגיאה ביצירת השאלה", err)
		return
	}
	util.Success(ctx, gin.H{
		"message":    "השאלה נוצרה בהצלחה",
		"questionId": question.ID,
	})
}

type askQuestionRequest struct {
	SlideID  *uint  `json:"slideId"`
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Send a question to the instructor
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body askQuestionRequest true "question"
// @Success 200 {object} object
// @Router /api/questions/ask [post]
func (c *QuestionController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	var req askQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		util.BadRequest(ctx, "נא להזין שאלה")
		return
	}

	question, err := c.QuestionService.Ask(claims.UserID, req.SlideID, strings.TrimSpace(req.Question))
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בשליחת השאלה", err)
		return
	}
	util.Success(ctx, gin.H{
		"message":    "השאלה נשלחה בהצלחה",
		"questionId": question.ID,
	})
}

// MyQuestions godoc
// @Summary The caller's questions and any instructor answers
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.StudentQuestionView
// @Router /api/questions/my-questions [get]
func (c *QuestionController) MyQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	questions, err := c.QuestionService.MyQuestions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת השאלות", err)
		return
	}
	util.Success(ctx, questions)
}

// AllQuestions godoc
// @Summary All student questions, optionally filtered by status
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or answered"
// @Success 200 {array} model.InstructorQuestionView
// @Router /api/questions/all-questions [get]
func (c *QuestionController) AllQuestions(ctx *gin.Context) {
	status := model.QuestionStatus(ctx.Query("status"))
	if status != "" && status != model.QuestionPending && status != model.QuestionAnswered {
		util.BadRequest(ctx, "סטטוס לא תקין")
		return
	}

	questions, err := c.QuestionService.AllQuestions(status)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת השאלות", err)
		return
	}
	util.Success(ctx, questions)
}

type answerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// AnswerQuestion godoc
// @Summary Answer a student question
// @Description Sets the answer unconditionally; a repeated call replaces
// the previous answer.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "question id"
// @Param body body answerQuestionRequest true "answer"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/questions/{questionId}/answer-instructor [post]
func (c *QuestionController) AnswerQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	questionID, err := util.ParseUintParam(ctx, "questionId")
	if err != nil {
		util.BadRequest(ctx, "מזהה שאלה לא תקין")
		return
	}

	var req answerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Answer) == "" {
		util.BadRequest(ctx, "נא להזין תשובה")
		return
	}

	if err := c.QuestionService.AnswerStudentQuestion(questionID, claims.UserID, strings.TrimSpace(req.Answer)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "שאלה לא נמצאה")
		} else {
			util.LogInternalError(ctx, "שגיאה בשמירת התשובה", err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "התשובה נשמרה בהצלחה"})
}
