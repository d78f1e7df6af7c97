package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type recordProgressRequest struct {
	TimeSpent int  `json:"timeSpent"`
	Completed bool `json:"completed"`
}

// RecordSlideProgress godoc
// @Summary Record time spent on a slide
// @Description Accumulates viewing time and optionally marks the slide
// completed. Completion is rejected until the slide's minimum reading
// time has accumulated across all visits.
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slideId path int true "slide id"
// @Param body body recordProgressRequest true "progress report"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Failure 404 {object} object
// @Router /api/slides/{slideId}/progress [post]
func (c *ProgressController) RecordSlideProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	slideID, err := util.ParseUintParam(ctx, "slideId")
	if err != nil {
		util.BadRequest(ctx, "מזהה שקף לא תקין")
		return
	}

	var req recordProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא לדווח זמן קריאה")
		return
	}

	progress, err := c.ProgressService.RecordSlideProgress(claims.UserID, slideID, req.TimeSpent, req.Completed)
	if err != nil {
		var minErr *util.MinReadingTimeError
		switch {
		case errors.As(err, &minErr):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":       fmt.Sprintf("יש לקרוא את השקף לפחות %d שניות לפני מעבר לשקף הבא", minErr.Required),
				"minTime":     minErr.Required,
				"currentTime": minErr.Current,
			})
		case errors.Is(err, util.ErrSlideNotFound):
			util.NotFound(ctx, "שקף לא נמצא")
		default:
			util.LogInternalError(ctx, "שגיאה בשמירת ההתקדמות", err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message":  "ההתקדמות נשמרה בהצלחה",
		"progress": progress,
	})
}

// GetSlideProgress godoc
// @Summary Get the caller's progress on one slide
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param slideId path int true "slide id"
// @Success 200 {object} model.SlideProgress
// @Router /api/slides/{slideId}/progress [get]
func (c *ProgressController) GetSlideProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	slideID, err := util.ParseUintParam(ctx, "slideId")
	if err != nil {
		util.BadRequest(ctx, "מזהה שקף לא תקין")
		return
	}

	progress, err := c.ProgressService.GetSlideProgress(claims.UserID, slideID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת ההתקדמות", err)
		return
	}
	util.Success(ctx, progress)
}

// MyProgress godoc
// @Summary Get the caller's course progress summary
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProgressSummary
// @Router /api/progress/my-progress [get]
func (c *ProgressController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	summary, err := c.ProgressService.MyProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת ההתקדמות", err)
		return
	}
	util.Success(ctx, summary)
}

// DetailedProgress godoc
// @Summary Per-module progress breakdown for the caller
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ModuleProgress
// @Router /api/progress/my-progress/detailed [get]
func (c *ProgressController) DetailedProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	breakdown, err := c.ProgressService.DetailedProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת ההתקדמות", err)
		return
	}
	util.Success(ctx, breakdown)
}

// AllStudents godoc
// @Summary Progress of every student
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.StudentProgress
// @Router /api/progress/all [get]
func (c *ProgressController) AllStudents(ctx *gin.Context) {
	students, err := c.ProgressService.AllStudents()
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת התקדמות הסטודנטים", err)
		return
	}
	util.Success(ctx, students)
}

// StudentSlides godoc
// @Summary Slide-level detail for one student
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param userId path int true "user id"
// @Success 200 {array} model.StudentSlideRow
// @Router /api/progress/student/{userId} [get]
func (c *ProgressController) StudentSlides(ctx *gin.Context) {
	userID, err := util.ParseUintParam(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, "מזהה משתמש לא תקין")
		return
	}

	rows, err := c.ProgressService.StudentSlides(userID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת התקדמות הסטודנט", err)
		return
	}
	util.Success(ctx, rows)
}
