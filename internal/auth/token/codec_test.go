package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	codec, err := NewCodec("test-signing-secret")
	require.NoError(t, err)
	return codec
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("")
	assert.Error(t, err)
}

func TestMintVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	user := auth.UserData{UserID: "alice", UserName: "Alice Example"}

	credential, err := codec.Mint(user)
	require.NoError(t, err)
	require.NotEmpty(t, credential)

	got, err := codec.Verify(credential)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestMintVerifyRoundTripWithoutUserName(t *testing.T) {
	codec := newTestCodec(t)

	credential, err := codec.Mint(auth.UserData{UserID: "alice"})
	require.NoError(t, err)

	got, err := codec.Verify(credential)
	require.NoError(t, err)
	assert.Equal(t, auth.UserData{UserID: "alice"}, got)
}

func TestMintRequiresUserID(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Mint(auth.UserData{UserName: "No ID"})
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	codec := newTestCodec(t)

	credential, err := codec.Mint(auth.UserData{UserID: "alice"})
	require.NoError(t, err)

	// Flip one byte in each of the three segments.
	parts := strings.Split(credential, ".")
	require.Len(t, parts, 3)

	for i := range parts {
		tampered := make([]string, 3)
		copy(tampered, parts)
		tampered[i] = flipByte(tampered[i])

		_, err := codec.Verify(strings.Join(tampered, "."))
		assert.ErrorIs(t, err, ErrInvalidCredential, "segment %d", i)
	}
}

func TestVerifyRejectsTokenSignedWithDifferentKey(t *testing.T) {
	other, err := NewCodec("some-other-secret")
	require.NoError(t, err)

	credential, err := other.Mint(auth.UserData{UserID: "alice"})
	require.NoError(t, err)

	codec := newTestCodec(t)

	_, err = codec.Verify(credential)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)

	for _, credential := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(credential)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	codec := newTestCodec(t)

	// alg=none token with a userId claim.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJ1c2VySWQiOiJhbGljZSJ9."

	_, err := codec.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func flipByte(segment string) string {
	if segment == "" {
		return "A"
	}

	b := []byte(segment)
	if b[0] == 'A' {
		b[0] = 'B'
	} else {
		b[0] = 'A'
	}
	return string(b)
}
