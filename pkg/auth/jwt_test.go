package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/internal/address"
)

func TestIssueParse(t *testing.T) {
	s := NewSigner("0123456789abcdef", time.Hour)
	who := address.Derive("user", []byte("alice"))

	tok, err := s.Issue(who)
	require.NoError(t, err)

	got, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, who, got)
}

func TestParseRejects(t *testing.T) {
	s := NewSigner("0123456789abcdef", time.Hour)
	other := NewSigner("fedcba9876543210", time.Hour)
	expired := NewSigner("0123456789abcdef", time.Nanosecond)
	who := address.Derive("user", []byte("alice"))

	forged, err := other.Issue(who)
	require.NoError(t, err)
	_, err = s.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	old, err := expired.Issue(who)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = s.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
