package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newImportService(db *gorm.DB) *UserImportService {
	return NewUserImportService(repository.NewUserRepository(db))
}

// buildWorkbook writes the given rows, headers first, into an in-memory
// xlsx file.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportCreatesAndUpdates(t *testing.T) {
	db := newTestDB(t)
	existing := createUser(t, db, "bob", "oldpass", "Bob the Medic", model.Instructor)

	svc := newImportService(db)

	buf := buildWorkbook(t, [][]interface{}{
		{"username", "password"},
		{" Bob ", "newpass"},
		{"alice", "alicepw"},
	})

	result, err := svc.ImportFromReader(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, result.Total)
	assert.Empty(t, result.Errors)

	// " Bob " matched the stored "bob": password replaced, everything
	// else untouched.
	var bob model.User
	require.NoError(t, db.First(&bob, existing.ID).Error)
	assert.Equal(t, "bob", bob.Username)
	assert.Equal(t, "Bob the Medic", bob.FullName)
	assert.Equal(t, model.Instructor, bob.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(bob.Password), []byte("newpass")))

	// alice is new: created as a student with the username as full name.
	var alice model.User
	require.NoError(t, db.Where("username = ?", "alice").First(&alice).Error)
	assert.Equal(t, model.Student, alice.Role)
	assert.Equal(t, "alice", alice.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("alicepw")))
}

func TestImportRowFailuresDoNotAbortBatch(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	buf := buildWorkbook(t, [][]interface{}{
		{"username", "password"},
		{"", "pw1"},
		{"carol", ""},
		{"dave", "davepw"},
	})

	result, err := svc.ImportFromReader(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "שורה 2")
	assert.Contains(t, result.Errors[1], "שורה 3")

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportAcceptsReorderedAndCasedHeaders(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	buf := buildWorkbook(t, [][]interface{}{
		{"Password", "extra", "USERNAME"},
		{"evepw", "ignored", "eve"},
	})

	result, err := svc.ImportFromReader(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	var eve model.User
	require.NoError(t, db.Where("username = ?", "eve").First(&eve).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(eve.Password), []byte("evepw")))
}

func TestImportRejectsHeaderOnlyFile(t *testing.T) {
	svc := newImportService(newTestDB(t))

	buf := buildWorkbook(t, [][]interface{}{
		{"username", "password"},
	})

	_, err := svc.ImportFromReader(buf)
	assert.True(t, errors.Is(err, ErrImportEmpty))
}

func TestImportRejectsMissingColumns(t *testing.T) {
	svc := newImportService(newTestDB(t))

	buf := buildWorkbook(t, [][]interface{}{
		{"user", "pass"},
		{"dana", "pw"},
	})

	_, err := svc.ImportFromReader(buf)
	assert.True(t, errors.Is(err, ErrImportMissingColumns))
}

func TestImportRowNumbersCountHeader(t *testing.T) {
	svc := newImportService(newTestDB(t))

	buf := buildWorkbook(t, [][]interface{}{
		{"username", "password"},
		{"ok", "pw"},
		{"", "pw"},
	})

	result, err := svc.ImportFromReader(buf)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	// The bad row is the third spreadsheet row.
	assert.Contains(t, result.Errors[0], "שורה 3")
}
