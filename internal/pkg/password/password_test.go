package password

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, Verify(hash, "s3cret-pass"))
	assert.False(t, Verify(hash, "wrong-pass"))
	assert.False(t, Verify(hash, ""))
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	h1, err := Hash("same-input")
	require.NoError(t, err)
	h2, err := Hash("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestGenerate_LengthAndCharset(t *testing.T) {
	alnum := regexp.MustCompile(`^[A-Za-z0-9]+$`)
	for i := 0; i < 20; i++ {
		p, err := Generate()
		require.NoError(t, err)
		assert.Len(t, p, GeneratedLength)
		assert.Regexp(t, alnum, p)
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	p1, err := Generate()
	require.NoError(t, err)
	p2, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}
