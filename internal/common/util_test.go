package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandByteArray_Length(t *testing.T) {
	a := GenerateRandByteArray(24)
	b := GenerateRandByteArray(24)

	assert.Len(t, a, 24)
	assert.Len(t, b, 24)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 6), buf)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
