package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	s := Ptr("closed")
	require.NotNil(t, s)
	assert.Equal(t, "closed", *s)

	f := Ptr(45.0)
	require.NotNil(t, f)
	assert.Equal(t, 45.0, *f)
}
