package util

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrSlideNotFound      = errors.New("slide not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidID          = errors.New("invalid id")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
)

// MinReadingTimeError rejects a completion attempt made before the
// slide's minimum dwell time has accumulated. Required and Current let
// the client tell the user how long is left and retry.
type MinReadingTimeError struct {
	Required int
	Current  int
}

func (e *MinReadingTimeError) Error() string {
	return fmt.Sprintf("minimum reading time not met: %ds required, %ds accumulated", e.Required, e.Current)
}
