package controller

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserController struct {
	UserService   *service.UserService
	ImportService *service.UserImportService
	Config        *config.Config
}

func NewUserController(userService *service.UserService, importService *service.UserImportService, cfg *config.Config) *UserController {
	return &UserController{
		UserService:   userService,
		ImportService: importService,
		Config:        cfg,
	}
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.UserService.List()
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת המשתמשים", err)
		return
	}
	util.Success(ctx, users)
}

// Get godoc
// @Summary Get a single user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "user id"
// @Success 200 {object} model.User
// @Failure 404 {object} object
// @Router /api/users/{userId} [get]
func (c *UserController) Get(ctx *gin.Context) {
	userID, err := util.ParseUintParam(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, "מזהה משתמש לא תקין")
		return
	}

	user, err := c.UserService.Get(userID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "משתמש לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה בטעינת המשתמש", err)
		}
		return
	}
	util.Success(ctx, user)
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createUserRequest true "user"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Router /api/users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req createUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא להזין שם משתמש וסיסמה")
		return
	}

	role := model.UserRole(req.Role)
	if role == "" {
		role = model.Student
	}

	user, err := c.UserService.Create(req.Username, req.Password, req.FullName, role)
	if err != nil {
		if errors.Is(err, util.ErrUsernameTaken) {
			util.BadRequest(ctx, "שם המשתמש כבר קיים")
		} else {
			util.LogInternalError(ctx, "שגיאה ביצירת המשתמש", err)
		}
		return
	}
	util.Success(ctx, gin.H{
		"message": "משתמש נוצר בהצלחה",
		"userId":  user.ID,
	})
}

// UpdateFromExcel godoc
// @Summary Import users from an uploaded Excel file
// @Description Expects username and password columns. Existing users get
// only their password updated; unknown usernames become student
// accounts. Row failures are reported without aborting the batch.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx file"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} object
// @Router /api/users/update-from-excel [post]
func (c *UserController) UpdateFromExcel(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "לא הועלה קובץ")
		return
	}
	if !util.IsSpreadsheet(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		util.BadRequest(ctx, "נא להעלות קובץ Excel בלבד")
		return
	}

	// The workbook is staged to disk so a parse failure cannot leave a
	// half-read multipart stream behind; the temp file is always removed.
	tmpPath := filepath.Join(c.Config.Import.UploadDir, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, "שגיאה בשמירת הקובץ", err)
		return
	}
	defer os.Remove(tmpPath)

	c.runImport(ctx, tmpPath)
}

// SyncFromExcel godoc
// @Summary Import users from the configured users.xlsx on disk
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ImportResult
// @Failure 404 {object} object
// @Router /api/users/sync-from-excel [post]
func (c *UserController) SyncFromExcel(ctx *gin.Context) {
	path := c.Config.Import.UsersFile
	if _, err := os.Stat(path); err != nil {
		util.NotFound(ctx, "קובץ users.xlsx לא נמצא בתיקיית הפרויקט")
		return
	}

	c.runImport(ctx, path)
}

func (c *UserController) runImport(ctx *gin.Context, path string) {
	result, err := c.ImportService.ImportFromFile(path)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportEmpty), errors.Is(err, service.ErrImportMissingColumns):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, "שגיאה בקריאת הקובץ", err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message": "הסנכרון הושלם",
		"updated": result.Updated,
		"created": result.Created,
		"total":   result.Total,
		"errors":  result.Errors,
	})
}
