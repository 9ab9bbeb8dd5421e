package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESEncryptorRoundTrip(t *testing.T) {
	enc, err := NewAESEncryptor([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	sealed, err := enc.Encrypt([]byte("123.456.789-00"))
	require.NoError(t, err)
	assert.NotEqual(t, []byte("123.456.789-00"), sealed)

	plain, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-00", string(plain))
}

func TestSealStringRoundTrip(t *testing.T) {
	enc, err := NewAESEncryptor([]byte("0123456789abcdef"))
	require.NoError(t, err)

	sealed, err := SealString(enc, "123.456.789-00")
	require.NoError(t, err)
	assert.NotEqual(t, "123.456.789-00", sealed)

	plain, err := OpenString(enc, sealed)
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-00", plain)

	_, err = OpenString(enc, "%%% not base64 %%%")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestAESEncryptorRejectsBadKey(t *testing.T) {
	_, err := NewAESEncryptor([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestAESEncryptorRejectsTruncatedCiphertext(t *testing.T) {
	enc, err := NewAESEncryptor([]byte("0123456789abcdef"))
	require.NoError(t, err)

	_, err = enc.Decrypt([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrDecryption)
}
