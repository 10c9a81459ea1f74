package service

import (
	"testing"

	"diversity-shop/internal/model"

	"github.com/stretchr/testify/require"
)

type stubSession struct {
	key    model.OwnerKey
	hasKey bool
}

func (s *stubSession) OwnerKey() (model.OwnerKey, bool) { return s.key, s.hasKey }
func (s *stubSession) SetOwnerKey(key model.OwnerKey)   { s.key, s.hasKey = key, true }

func TestResolveOwnerKeyKeepsStoredKey(t *testing.T) {
	sess := &stubSession{key: "existing-key", hasKey: true}

	key := ResolveOwnerKey(sess, model.Authenticated("user@example.com"))

	// a stored key always wins, even over an authenticated identity
	require.Equal(t, model.OwnerKey("existing-key"), key)
	require.Equal(t, model.OwnerKey("existing-key"), sess.key)
}

func TestResolveOwnerKeyAuthenticatedUsesIdentity(t *testing.T) {
	sess := &stubSession{}

	key := ResolveOwnerKey(sess, model.Authenticated("user@example.com"))

	require.Equal(t, model.OwnerKey("user@example.com"), key)
	require.True(t, sess.hasKey)
}

func TestResolveOwnerKeyAnonymousGeneratesStableToken(t *testing.T) {
	sess := &stubSession{}

	first := ResolveOwnerKey(sess, model.Anonymous())
	require.NotEmpty(t, first)

	second := ResolveOwnerKey(sess, model.Anonymous())
	require.Equal(t, first, second)

	other := ResolveOwnerKey(&stubSession{}, model.Anonymous())
	require.NotEqual(t, first, other)
}
