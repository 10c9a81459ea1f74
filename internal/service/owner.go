package service

import (
	"diversity-shop/internal/model"

	"github.com/google/uuid"
)

// OwnerSession is the slice of session state the cart workflow needs: the
// stored owner key. Implemented by the cookie session in internal/session
// and by stubs in tests.
type OwnerSession interface {
	OwnerKey() (model.OwnerKey, bool)
	SetOwnerKey(key model.OwnerKey)
}

// ResolveOwnerKey determines whose cart the current request acts on.
//
// A key already stored in the session is always returned unchanged;
// re-issuing a key mid-session would orphan the cart rows written under the
// old one. Otherwise an authenticated user gets their stable identity string
// and an anonymous shopper gets a fresh random token, and either way the key
// is stored in the session before returning.
func ResolveOwnerKey(sess OwnerSession, identity model.Identity) model.OwnerKey {
	if key, ok := sess.OwnerKey(); ok {
		return key
	}

	var key model.OwnerKey
	if identity.IsAuthenticated() {
		key = identity.Key()
	} else {
		key = model.OwnerKey(uuid.NewString())
	}

	sess.SetOwnerKey(key)
	return key
}
