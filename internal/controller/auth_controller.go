package controller

import (
	"errors"
	"strings"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	FullName string         `json:"fullName"`
	Role     model.UserRole `json:"role"`
}

func toUserPayload(u *model.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// Login godoc
// @Summary User login
// @Description Exchanges username and password for a JWT. Username match is case- and whitespace-insensitive.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} object "token and user"
// @Failure 400 {object} object
// @Failure 401 {object} object
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא להזין שם משתמש וסיסמה")
		return
	}
	if req.Username == "" || req.Password == "" {
		util.BadRequest(ctx, "נא להזין שם משתמש וסיסמה")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		util.BadRequest(ctx, "נא להזין שם משתמש תקין")
		return
	}

	user, token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, "שם משתמש או סיסמה שגויים")
		} else {
			util.LogInternalError(ctx, "שגיאה בבסיס הנתונים", err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  toUserPayload(user),
	})
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא למלא את כל השדות הנדרשים")
		return
	}

	role := model.UserRole(req.Role)
	if role == "" {
		role = model.Student
	}

	user, err := c.AuthService.Register(req.Username, req.Password, req.FullName, role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUsernameTaken):
			util.BadRequest(ctx, "שם המשתמש כבר קיים")
		case errors.Is(err, util.ErrInvalidCredentials):
			util.BadRequest(ctx, "נא להזין שם משתמש תקין")
		default:
			util.LogInternalError(ctx, "שגיאה ביצירת משתמש", err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message": "משתמש נוצר בהצלחה",
		"userId":  user.ID,
	})
}

// Verify godoc
// @Summary Resolve the bearer token to its user
// @Tags auth
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} object
// @Failure 403 {object} object
// @Router /api/auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		util.Unauthorized(ctx, "לא נמצא טוקן")
		return
	}

	user, err := c.AuthService.Verify(token)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "משתמש לא נמצא")
		} else {
			util.Error(ctx, 403, "טוקן לא תקין")
		}
		return
	}

	util.Success(ctx, gin.H{"user": toUserPayload(user)})
}
