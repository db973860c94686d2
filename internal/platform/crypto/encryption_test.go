package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptRoundTrip(t *testing.T) {
	svc, err := New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	require.True(t, svc.Configured())

	sealed, err := svc.EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotEqual(t, "JBSWY3DPEHPK3PXP", string(sealed))

	plain, err := svc.DecryptString(sealed)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", plain)
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	svc, err := New("")
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	sealed, err := svc.EncryptString("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", string(sealed))
}

func TestRejectsShortKey(t *testing.T) {
	_, err := New("short")
	assert.Error(t, err)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	svc, err := New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	_, err = svc.DecryptString([]byte("abc"))
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	sealed, err := svc.EncryptString("secret")
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff
	_, err = svc.DecryptString(sealed)
	assert.Error(t, err)
}
