package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfOnlyGuard(t *testing.T) {
	t.Parallel()

	guard := NewSelfOnlyGuard()

	assert.True(t, guard.CanView("testuser", "testuser"))
	assert.False(t, guard.CanView("testuser", "anotheruser"))
	assert.False(t, guard.CanView("", ""))
}
