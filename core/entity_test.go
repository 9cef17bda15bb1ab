package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityAllocator(t *testing.T) {
	var a EntityAllocator
	first := a.Next()
	second := a.Next()
	assert.Equal(t, Entity(1), first)
	assert.Equal(t, Entity(2), second)
	assert.True(t, first.Valid())
	assert.False(t, Entity(0).Valid())
	assert.Equal(t, "e2", second.String())

	a.Reset()
	assert.Equal(t, Entity(1), a.Next())
}
