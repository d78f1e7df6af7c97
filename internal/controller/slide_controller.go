package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/service"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/gin-gonic/gin"
)

type SlideController struct {
	ContentService *service.ContentService
	Config         *config.Config
}

func NewSlideController(contentService *service.ContentService, cfg *config.Config) *SlideController {
	return &SlideController{ContentService: contentService, Config: cfg}
}

// ListSlides godoc
// @Summary List a module's slides in order
// @Tags slides
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "module id"
// @Success 200 {array} model.Slide
// @Router /api/slides/module/{moduleId} [get]
func (c *SlideController) ListSlides(ctx *gin.Context) {
	moduleID, err := util.ParseUintParam(ctx, "moduleId")
	if err != nil {
		util.BadRequest(ctx, "מזהה נושא לא תקין")
		return
	}

	slides, err := c.ContentService.ListSlides(moduleID)
	if err != nil {
		util.LogInternalError(ctx, "שגיאה בטעינת השקפים", err)
		return
	}
	util.Success(ctx, slides)
}

// GetSlide godoc
// @Summary Get a single slide
// @Tags slides
// @Produce json
// @Security BearerAuth
// @Param slideId path int true "slide id"
// @Success 200 {object} model.Slide
// @Failure 404 {object} object
// @Router /api/slides/{slideId} [get]
func (c *SlideController) GetSlide(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "slideId")
	if err != nil {
		util.BadRequest(ctx, "מזהה שקף לא תקין")
		return
	}

	slide, err := c.ContentService.GetSlide(id)
	if err != nil {
		if errors.Is(err, util.ErrSlideNotFound) {
			util.NotFound(ctx, "שקף לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה בטעינת השקף", err)
		}
		return
	}
	util.Success(ctx, slide)
}

type createSlideRequest struct {
	ModuleID       uint            `json:"moduleId" binding:"required"`
	Title          string          `json:"title" binding:"required"`
	Content        string          `json:"content"`
	SlideType      model.SlideType `json:"slideType"`
	MediaURL       string          `json:"mediaUrl"`
	OrderIndex     int             `json:"orderIndex"`
	MinReadingTime int             `json:"minReadingTime"`
}

// CreateSlide godoc
// @Summary Create a slide in a module
// @Tags slides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createSlideRequest true "slide"
// @Success 200 {object} model.Slide
// @Router /api/slides [post]
func (c *SlideController) CreateSlide(ctx *gin.Context) {
	var req createSlideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "נא למלא את שדות השקף הנדרשים")
		return
	}

	slide := &model.Slide{
		ModuleID:       req.ModuleID,
		Title:          req.Title,
		Content:        req.Content,
		SlideType:      req.SlideType,
		MediaURL:       req.MediaURL,
		OrderIndex:     req.OrderIndex,
		MinReadingTime: req.MinReadingTime,
	}
	if err := c.ContentService.CreateSlide(slide); err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx, "נושא לא נמצא")
		} else {
			util.LogInternalError(ctx, "שגיאה ביצירת השקף", err)
		}
		return
	}
	util.Success(ctx, slide)
}

// UploadMedia godoc
// @Summary Upload slide media
// @Description Stores an image or video and returns its public URL. Video
// duration is probed so the slide's minimum reading time can default to it.
// @Tags slides
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "media file"
// @Success 200 {object} object
// @Router /api/slides/media [post]
func (c *SlideController) UploadMedia(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "לא נבחר קובץ להעלאה")
		return
	}

	url, durationSeconds, err := c.ContentService.UploadMedia(ctx.Request.Context(), fileHeader)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedMedia) {
			util.BadRequest(ctx, "סוג הקובץ אינו נתמך")
		} else {
			util.LogInternalError(ctx, "שגיאה בהעלאת הקובץ", err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"url":             url,
		"durationSeconds": durationSeconds,
	})
}

// DownloadHandbook godoc
// @Summary Download the course handbook
// @Tags materials
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 404 {object} object
// @Router /api/materials/download [get]
func (c *SlideController) DownloadHandbook(ctx *gin.Context) {
	path := c.Config.Materials.HandbookPath
	if _, err := os.Stat(path); err != nil {
		util.NotFound(ctx, "חוברת הקורס לא נמצאה")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	ctx.Header("Content-Type", "application/pdf")
	ctx.Status(http.StatusOK)
	ctx.File(path)
}
