package principal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeladmin/internal/errorx"
)

func TestParse(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		p, err := Parse("2vxsx-fae")
		require.NoError(t, err)
		assert.True(t, p.IsAnonymous())
		assert.Equal(t, "2vxsx-fae", Anonymous().String())
	})

	t.Run("management canister", func(t *testing.T) {
		p, err := Parse("aaaaa-aa")
		require.NoError(t, err)
		assert.Empty(t, p.Bytes())
	})

	t.Run("ledger canister", func(t *testing.T) {
		p, err := Parse("ryjl3-tyaaa-aaaaa-aaaba-cai")
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2, 1, 1}, p.Bytes())
		assert.False(t, p.IsAnonymous())
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		p, err := Parse(" 2vxsx-fae\n")
		require.NoError(t, err)
		assert.True(t, p.IsAnonymous())
	})

	for _, text := range []string{"", "not a principal", "2vxsx-fab", "2VXSX-FAE", "2vxsxfae"} {
		t.Run("rejects "+text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			assert.Equal(t, errorx.InvalidArgument, errorx.CodeOf(err))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	p, err := FromBytes([]byte("some-self-authenticating-id"))
	require.NoError(t, err)
	parsed, err := Parse(p.String())
	require.NoError(t, err)
	assert.True(t, p.Equal(parsed))

	_, err = FromBytes(make([]byte, 30))
	assert.Error(t, err)
}
