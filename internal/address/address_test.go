package address

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	post := Derive(NamespacePost, []byte("p1"))
	a := CommentPageAddress(post, 3)
	b := CommentPageAddress(post, 3)
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestDeriveSeparatesInputs(t *testing.T) {
	post := Derive(NamespacePost, []byte("p1"))
	other := Derive(NamespacePost, []byte("p2"))

	seen := map[Address]string{}
	add := func(name string, a Address) {
		prev, dup := seen[a]
		require.Falsef(t, dup, "%s collides with %s", name, prev)
		seen[a] = name
	}
	for i := uint64(0); i < 50; i++ {
		add("page/p1/"+string(rune('a'+i)), CommentPageAddress(post, i))
		add("page/p2/"+string(rune('a'+i)), CommentPageAddress(other, i))
	}
	add("like", UserLikeAddress(post, other))
	add("like-swapped", UserLikeAddress(other, post))
	add("comment-likes", CommentLikesAddress(post, other))
	add("follow", FollowAddress(post, other))
	add("profile", ProfileAddress(post))
	add("balance", BalanceAddress(post))
}

func TestDeriveLengthPrefixed(t *testing.T) {
	assert.NotEqual(t,
		Derive("ns", []byte("ab"), []byte("c")),
		Derive("ns", []byte("a"), []byte("bc")))
	assert.NotEqual(t, Derive("ns"), Derive("ns", []byte{}))
	assert.NotEqual(t, Derive("a", []byte("b")), Derive("ab"))
}

func TestU64LittleEndian(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, U64(1))
	assert.Equal(t, []byte{0x10, 0x27, 0, 0, 0, 0, 0, 0}, U64(10000))
}

func TestParseRoundTrip(t *testing.T) {
	id := uuid.New()
	a := PostAddress(id)

	parsed, err := Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	text, err := a.MarshalText()
	require.NoError(t, err)
	var back Address
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, a, back)
	assert.Len(t, a.Short(), 8)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse("abc")
	assert.ErrorIs(t, err, ErrInvalid)

	bad := make([]byte, 64)
	for i := range bad {
		bad[i] = 'z'
	}
	_, err = Parse(string(bad))
	assert.ErrorIs(t, err, ErrInvalid)
}
