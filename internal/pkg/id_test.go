package pkg

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRoomID(t *testing.T) {
	first := GenerateRoomID()
	second := GenerateRoomID()

	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), first)
	assert.NotEqual(t, first, second)
}
