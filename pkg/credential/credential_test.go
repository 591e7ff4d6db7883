package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDigest(t *testing.T) {
	cd := ClientDigest("a@example.com", "secret")
	assert.Equal(t, "8535a1e56a5592a83a49ab43be3a6e8d78366eea", cd)

	// deterministic across calls
	assert.Equal(t, cd, ClientDigest("a@example.com", "secret"))

	// both inputs participate
	assert.NotEqual(t, cd, ClientDigest("a@example.com", "wrong"))
	assert.NotEqual(t, cd, ClientDigest("b@example.com", "secret"))
}

func TestStoredDigest(t *testing.T) {
	cd := ClientDigest("a@example.com", "secret")
	sd := StoredDigest("u-1", cd)
	assert.Equal(t, "a7ce702b4cea1d5cd38ff971b008aa7ef8eef82b", sd)
	assert.Len(t, sd, 40)

	// a stored digest is account specific: same client digest, different uid
	assert.NotEqual(t, sd, StoredDigest("u-2", cd))
}

func TestTempSecret(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	s := TempSecret("u-1", at)
	assert.Equal(t, "58ef74bbac", s)
	require.Len(t, s, TempSecretLen)

	// the issued secret verifies through the normal chain
	cd := ClientDigest("a@example.com", s)
	assert.Equal(t, "0a6a883ad7bb14b4fd6bc22b874e8b3ed6838e69", cd)
	assert.Equal(t, StoredDigest("u-1", cd), StoredDigest("u-1", ClientDigest("a@example.com", s)))

	// different issue time, different secret
	assert.NotEqual(t, s, TempSecret("u-1", at.Add(time.Millisecond)))
}
