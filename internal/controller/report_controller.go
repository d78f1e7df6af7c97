package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// GenerateCompletion godoc
// @Summary Generate a completion report PDF for a student
// @Description Snapshots the student's progress, persists the report
// with a three year retention window, and streams the PDF.
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param userId path int true "user id"
// @Success 200 {file} file
// @Failure 404 {object} object
// @Router /api/reports/completion/{userId} [get]
func (c *ReportController) GenerateCompletion(ctx *gin.Context) {
	userID, err := util.ParseUintParam(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, "מזהה משתמש לא תקין")
		return
	}

	report, pdfBytes, err := c.ReportService.Generate(userID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "משתמש לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה ביצירת הדוח", err)
		}
		return
	}

	var snapshot service.ReportSnapshot
	username := fmt.Sprintf("user%d", userID)
	if err := json.Unmarshal([]byte(report.ReportData), &snapshot); err == nil && snapshot.User.Username != "" {
		username = snapshot.User.Username
	}

	filename := fmt.Sprintf("report_%s_%s.pdf", username, report.GeneratedAt.Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// ListForUser godoc
// @Summary List a user's stored reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param userId path int true "user id"
// @Success 200 {array} service.ReportMeta
// @Router /api/reports/user/{userId} [get]
func (c *ReportController) ListForUser(ctx *gin.Context) {
	userID, err := util.ParseUintParam(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, "מזהה משתמש לא תקין")
		return
	}

	reports, err := c.ReportService.ListForUser(userID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת הדוחות", err)
		return
	}
	util.Success(ctx, reports)
}

// Get godoc
// @Summary Get a stored report with its snapshot
// @Description Students can only read their own reports; instructors can
// read any. Expired reports are no longer served.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param reportId path int true "report id"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/reports/{reportId} [get]
func (c *ReportController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "אין הרשאה - נדרש טוקן אימות")
		return
	}

	reportID, err := util.ParseUintParam(ctx, "reportId")
	if err != nil {
		util.BadRequest(ctx, "מזהה דוח לא תקין")
		return
	}

	report, err := c.ReportService.Get(reportID)
	if err != nil {
		if errors.Is(err, util.ErrReportNotFound) {
			util.NotFound(ctx, "דוח לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה בטעינת הדוח", err)
		}
		return
	}

	if claims.UserID != report.UserID && claims.Role != model.Instructor && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}
	if time.Now().After(report.ExpiresAt) {
		util.Error(ctx, http.StatusGone, "תוקף הדוח פג ואינו זמין עוד")
		return
	}

	var snapshot service.ReportSnapshot
	if err := json.Unmarshal([]byte(report.ReportData), &snapshot); err != nil {
		util.LogInternalError(ctx, "שגיאה בקריאת נתוני הדוח", err)
		return
	}

	util.Success(ctx, gin.H{
		"id":          report.ID,
		"userId":      report.UserID,
		"generatedAt": report.GeneratedAt,
		"expiresAt":   report.ExpiresAt,
		"snapshot":    snapshot,
	})
}
