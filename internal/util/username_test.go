package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	cases := map[string]string{
		"admin":        "admin",
		"Admin":        "admin",
		"  ADMIN  ":    "admin",
		"Bob ":         "bob",
		"\tdana\n":     "dana",
		"":             "",
		"   ":          "",
		"student1":     "student1",
		"Student1 ":    "student1",
	}

	for input, want := range cases {
		assert.Equal(t, want, NormalizeUsername(input), "input %q", input)
	}
}
