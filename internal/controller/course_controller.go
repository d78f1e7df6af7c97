package controller

import (
	"errors"

	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	ContentService *service.ContentService
}

func NewCourseController(contentService *service.ContentService) *CourseController {
	return &CourseController{ContentService: contentService}
}

// ListCourses godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Course
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת הקורסים", err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get a course with its ordered modules
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "course id"
// @Success 200 {object} service.CourseWithModules
// @Failure 404 {object} object
// @Router /api/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "courseId")
	if err != nil {
		util.BadRequest(ctx, "מזהה קורס לא תקין")
		return
	}

	course, err := c.ContentService.GetCourseWithModules(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "קורס לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה בטעינת הקורס", err)
		}
		return
	}
	util.Success(ctx, course)
}

type createCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createCourseRequest true "course"
// @Success 200 {object} model.Course
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req createCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא להזין כותרת לקורס")
		return
	}

	course, err := c.ContentService.CreateCourse(ctx.Request.Context(), req.Title, req.Description)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה ביצירת הקורס", err)
		return
	}
	util.Success(ctx, course)
}

type createModuleRequest struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

// CreateModule godoc
// @Summary Add a module to a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "course id"
// @Param body body createModuleRequest true "module"
// @Success 200 {object} model.Module
// @Failure 404 {object} object
// @Router /api/courses/{courseId}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	courseID, err := util.ParseUintParam(ctx, "courseId")
	if err != nil {
		util.BadRequest(ctx, "מזהה קורס לא תקין")
		return
	}

	var req createModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא להזין כותרת לנושא")
		return
	}

	mod, err := c.ContentService.CreateModule(ctx.Request.Context(), courseID, req.Title, req.OrderIndex)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "קורס לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה ביצירת הנושא", err)
		}
		return
	}
	util.Success(ctx, mod)
}
