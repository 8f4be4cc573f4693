package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzNonZero_Int64(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(-1001234567890))
	f.Fuzz(func(t *testing.T, i int64) {
		p := NonZero(i)
		if i == 0 {
			assert.Nil(t, p)
			return
		}
		assert.Equal(t, i, *p)
	})
}

func TestNonZero(t *testing.T) {
	assert.Nil(t, NonZero(int64(0)))
	assert.Nil(t, NonZero(""))

	p := NonZero(int64(42))
	if assert.NotNil(t, p) {
		assert.Equal(t, int64(42), *p)
	}
}
