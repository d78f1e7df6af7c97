package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Structural failures reject the whole batch before any write. Row
// problems never do; they land in ImportResult.Errors instead.
var (
	ErrImportEmpty          = errors.New("הקובץ ריק או לא מכיל נתונים")
	ErrImportMissingColumns = errors.New("הקובץ חייב להכיל עמודות: username ו-password")
)

// ImportResult summarizes one batch. Total is updated+created; rows
// that failed are neither.
type ImportResult struct {
	Updated int      `json:"updated"`
	Created int      `json:"created"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

// UserImportService upserts accounts from a username/password
// spreadsheet. Matching reuses the login normalization, so an account
// touched by import always remains log-in-able with casing variance.
type UserImportService struct {
	UserRepo *repository.UserRepository
}

func NewUserImportService(userRepo *repository.UserRepository) *UserImportService {
	return &UserImportService{UserRepo: userRepo}
}

func (s *UserImportService) ImportFromFile(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.importWorkbook(f)
}

func (s *UserImportService) ImportFromReader(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.importWorkbook(f)
}

func (s *UserImportService) importWorkbook(f *excelize.File) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, ErrImportEmpty
	}

	usernameCol, passwordCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "username":
			usernameCol = i
		case "password":
			passwordCol = i
		}
	}
	if usernameCol < 0 || passwordCol < 0 {
		return nil, ErrImportMissingColumns
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		// Spreadsheet row number, counting the header as row 1.
		rowNum := i + 2
		s.importRow(result, rowNum, cell(row, usernameCol), cell(row, passwordCol))
	}

	result.Total = result.Updated + result.Created
	return result, nil
}

// importRow processes one row independently; any failure here is
// recorded against the row and the batch moves on.
func (s *UserImportService) importRow(result *ImportResult, rowNum int, username, password string) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: שם משתמש חסר", rowNum))
		return
	}
	if password == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: סיסמה חסרה", rowNum))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: שגיאה בעיבוד - %v", rowNum, err))
		return
	}

	existing, err := s.UserRepo.FindByUsername(username)
	switch {
	case err == nil:
		// Existing account keeps its stored casing and full name;
		// only the password changes.
		if err := s.UserRepo.UpdatePassword(existing.ID, string(hashed)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: שגיאה בעדכון משתמש %s", rowNum, username))
			return
		}
		logger.Log.Info("import updated user", zap.String("username", existing.Username), zap.Uint("id", existing.ID))
		result.Updated++

	case err == gorm.ErrRecordNotFound:
		user := &model.User{
			Username: username,
			Password: string(hashed),
			FullName: username,
			Role:     model.Student,
		}
		if err := s.UserRepo.Create(user); err != nil {
			// A concurrent import may have inserted the same username
			// between the check and the write; that stays a row error.
			if repository.IsUniqueViolation(err) {
				result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: שם משתמש %s כבר קיים", rowNum, username))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: שגיאה ביצירת משתמש %s", rowNum, username))
			}
			return
		}
		logger.Log.Info("import created user", zap.String("username", username), zap.Uint("id", user.ID))
		result.Created++

	default:
		result.Errors = append(result.Errors, fmt.Sprintf("שורה %d: שגיאה בבדיקת משתמש %s", rowNum, username))
	}
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
