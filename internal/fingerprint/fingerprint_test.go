package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum64_Stable(t *testing.T) {
	assert.Equal(t, Sum64("orders", "true", "Order"), Sum64("orders", "true", "Order"))
	assert.NotEqual(t, Sum64("orders", "true", "Order"), Sum64("orders", "false", "Order"))
}

func TestSum64_PartBoundaries(t *testing.T) {
	assert.NotEqual(t, Sum64("ab", "c"), Sum64("a", "bc"))
	assert.NotEqual(t, Sum64("abc"), Sum64("ab", "c"))
}

func TestString(t *testing.T) {
	s := String("orders", "Order")
	assert.Len(t, s, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", s)
}
