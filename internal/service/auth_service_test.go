package service

import (
	"errors"
	"testing"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), testConfig())
}

func TestLoginMatchesUsernameLoosely(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "admin", "admin123", "Administrator", model.Admin)

	svc := newAuthService(db)

	// Casing and surrounding whitespace must not matter.
	for _, input := range []string{"admin", "Admin", "ADMIN", "  admin  ", "Admin "} {
		user, token, err := svc.Login(input, "admin123")
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "admin", user.Username)
		assert.NotEmpty(t, token)
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	db := newTestDB(t)
	created := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newAuthService(db)

	_, token, err := svc.Login("dana", "pw")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, "dana", claims.Username)
	assert.Equal(t, model.Student, claims.Role)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	db := newTestDB(t)
	created := createUser(t, db, "dana", "pw", "Dana", model.Student)
	require.Nil(t, created.LastLogin)

	svc := newAuthService(db)

	_, _, err := svc.Login("dana", "pw")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newAuthService(db)

	// Unknown user and wrong password fail identically.
	_, _, err := svc.Login("nobody", "pw")
	assert.True(t, errors.Is(err, util.ErrInvalidCredentials))

	_, _, err = svc.Login("dana", "wrong")
	assert.True(t, errors.Is(err, util.ErrInvalidCredentials))
}

func TestRegisterCreatesLoginableAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	created, err := svc.Register("  noa ", "secret1", "Noa", model.Student)
	require.NoError(t, err)
	assert.Equal(t, "noa", created.Username)

	user, _, err := svc.Login("Noa", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newAuthService(db)

	// Duplicate detection uses the same loose matching as login.
	_, err := svc.Register("Dana", "pw2", "Other Dana", model.Student)
	assert.True(t, errors.Is(err, util.ErrUsernameTaken))
}

func TestRegisterRejectsBlankUsername(t *testing.T) {
	svc := newAuthService(newTestDB(t))

	_, err := svc.Register("   ", "pw", "Nobody", model.Student)
	assert.True(t, errors.Is(err, util.ErrInvalidCredentials))
}

func TestVerifyRoundTrip(t *testing.T) {
	db := newTestDB(t)
	created := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newAuthService(db)

	_, token, err := svc.Login("dana", "pw")
	require.NoError(t, err)

	user, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)
}
