package counter_test

import (
	"testing"

	"go-texerp/internal/shared/counter"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "0000000001", counter.Format(1))
	assert.Equal(t, "0000000042", counter.Format(42))
	assert.Equal(t, "9999999999", counter.Format(9999999999))

	// padded width keeps lexicographic and numeric order aligned
	assert.Less(t, counter.Format(9), counter.Format(10))
}
