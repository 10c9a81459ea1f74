package model

// OwnerKey identifies whose cart a row belongs to. It is either a random
// session-scoped token (anonymous shopper) or the user's stable identity
// string once they are logged in.
type OwnerKey string

func (k OwnerKey) String() string { return string(k) }

// Identity is the authentication state of the current request. The zero
// value is an anonymous shopper.
type Identity struct {
	UserID string
}

func Anonymous() Identity { return Identity{} }

func Authenticated(userID string) Identity { return Identity{UserID: userID} }

func (i Identity) IsAuthenticated() bool { return i.UserID != "" }

// Key is the owner key an authenticated identity maps to. Only meaningful
// when IsAuthenticated is true.
func (i Identity) Key() OwnerKey { return OwnerKey(i.UserID) }
