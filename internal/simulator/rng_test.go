package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubStream(t *testing.T) {
	a, b := SubStream(42, "bundle-1"), SubStream(42, "bundle-1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}

	assert.NotEqual(t, SubStream(42, "bundle-1").Int63(), SubStream(42, "bundle-2").Int63())
	assert.NotEqual(t, SubStream(42, "bundle-1").Int63(), SubStream(43, "bundle-1").Int63())
}
