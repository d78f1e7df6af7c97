package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"
	"github.com/linoyezra1/learning-system/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const courseCacheTTL = 10 * time.Minute

// CourseWithModules is the course page payload.
type CourseWithModules struct {
	model.Course
	Modules []model.Module `json:"modules"`
}

// ContentService serves course structure and slide content, with a
// redis read-through cache on the course payload (content changes
// rarely, every student loads it on every visit).
type ContentService struct {
	CourseRepo *repository.CourseRepository
	SlideRepo  *repository.SlideRepository
	Storage    StorageProvider
	Redis      *redis.Client
	Cfg        *config.Config
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	slideRepo *repository.SlideRepository,
	storage StorageProvider,
	rdb *redis.Client,
	cfg *config.Config,
) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		SlideRepo:  slideRepo,
		Storage:    storage,
		Redis:      rdb,
		Cfg:        cfg,
	}
}

func (s *ContentService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.List()
}

func courseCacheKey(id uint) string {
	return fmt.Sprintf("course:%d:modules", id)
}

func (s *ContentService) GetCourseWithModules(ctx context.Context, id uint) (*CourseWithModules, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, courseCacheKey(id)).Result(); err == nil {
			var payload CourseWithModules
			if err := json.Unmarshal([]byte(cached), &payload); err == nil {
				return &payload, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	modules, err := s.CourseRepo.ListModules(id)
	if err != nil {
		return nil, err
	}

	payload := &CourseWithModules{Course: *course, Modules: modules}

	if s.Redis != nil {
		if raw, err := json.Marshal(payload); err == nil {
			if err := s.Redis.Set(ctx, courseCacheKey(id), raw, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("course cache write failed", zap.Error(err))
			}
		}
	}

	return payload, nil
}

func (s *ContentService) invalidateCourse(ctx context.Context, id uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, courseCacheKey(id)).Err(); err != nil {
		logger.Log.Warn("course cache invalidation failed", zap.Error(err))
	}
}

func (s *ContentService) CreateCourse(ctx context.Context, title, description string) (*model.Course, error) {
	course := &model.Course{Title: title, Description: description}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) CreateModule(ctx context.Context, courseID uint, title string, orderIndex int) (*model.Module, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	} else if err != nil {
		return nil, err
	}

	module := &model.Module{CourseID: courseID, Title: title, OrderIndex: orderIndex}
	if err := s.CourseRepo.CreateModule(module); err != nil {
		return nil, err
	}
	s.invalidateCourse(ctx, courseID)
	return module, nil
}

func (s *ContentService) ListSlides(moduleID uint) ([]model.Slide, error) {
	return s.SlideRepo.ListByModule(moduleID)
}

func (s *ContentService) GetSlide(id uint) (*model.Slide, error) {
	slide, err := s.SlideRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSlideNotFound
	}
	return slide, err
}

func (s *ContentService) CreateSlide(slide *model.Slide) error {
	if slide.MinReadingTime < 0 {
		return fmt.Errorf("min reading time must not be negative")
	}
	if _, err := s.CourseRepo.FindModuleByID(slide.ModuleID); err == gorm.ErrRecordNotFound {
		return util.ErrModuleNotFound
	} else if err != nil {
		return err
	}
	if slide.SlideType == "" {
		slide.SlideType = model.SlideText
	}
	return s.SlideRepo.Create(slide)
}

// UploadMedia stores an uploaded media file and returns its URL. Video
// uploads are probed with ffprobe; the rounded duration is returned so
// the caller can default a video slide's minimum reading time to it.
func (s *ContentService) UploadMedia(ctx context.Context, fileHeader *multipart.FileHeader) (url string, durationSeconds int, err error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeImage, util.MimePDF})
	if err != nil {
		return "", 0, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", 0, err
	}

	objectName := uuid.New().String() + filepath.Ext(fileHeader.Filename)

	// Probing needs a local path, so the file is staged under the
	// upload dir first and removed when done.
	if util.IsVideo(mimeType) {
		tmpPath := filepath.Join(s.Cfg.Import.UploadDir, objectName)
		tmp, err := os.Create(tmpPath)
		if err != nil {
			return "", 0, err
		}
		if _, err := tmp.ReadFrom(src); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return "", 0, err
		}
		tmp.Close()
		defer os.Remove(tmpPath)

		if info, err := util.ProbeVideo(tmpPath); err == nil {
			durationSeconds = int(info.Duration + 0.5)
		} else {
			logger.Log.Warn("media probe failed", zap.String("file", fileHeader.Filename), zap.Error(err))
		}

		staged, err := os.Open(tmpPath)
		if err != nil {
			return "", 0, err
		}
		defer staged.Close()

		url, err = s.Storage.Upload(ctx, objectName, staged, fileHeader.Size, mimeType)
		return url, durationSeconds, err
	}

	url, err = s.Storage.Upload(ctx, objectName, src, fileHeader.Size, mimeType)
	return url, 0, err
}
