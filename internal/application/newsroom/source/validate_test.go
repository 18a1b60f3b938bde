package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNilContent(t *testing.T) {
	v := Validate(nil)

	assert.False(t, v.Valid)
	assert.Equal(t, 0, v.WordCount)
	assert.NotEmpty(t, v.Reason)
}

func TestValidateTooShort(t *testing.T) {
	v := Validate(&Content{FullContent: wordsOf(99)})

	assert.False(t, v.Valid)
	assert.Equal(t, 99, v.WordCount)
	assert.NotEmpty(t, v.Reason)
}

func TestValidateAtThreshold(t *testing.T) {
	v := Validate(&Content{FullContent: wordsOf(100)})

	assert.True(t, v.Valid)
	assert.Equal(t, 100, v.WordCount)
}

func TestValidateLongContent(t *testing.T) {
	v := Validate(&Content{Title: "City Council Approves Budget", FullContent: wordsOf(500)})

	assert.True(t, v.Valid)
	assert.Empty(t, v.Reason)
}
