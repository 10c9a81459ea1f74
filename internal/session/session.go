package session

import (
	"encoding/json"
	"fmt"

	"diversity-shop/internal/model"
	"diversity-shop/internal/service"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	ownerKeyKey     = "cart_owner_key"
	pendingOrderKey = "pending_order"
	chargeRefKey    = "pending_charge_ref"
)

// Context is a typed view over the cookie session: the stored owner key and
// the pending order held between checkout submission and payment. Values are
// mutated in memory and only written back to the cookie by Save.
type Context struct {
	sess *sessions.Session
	c    echo.Context
}

func FromEcho(name string, c echo.Context) (*Context, error) {
	sess, err := echosession.Get(name, c)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &Context{sess: sess, c: c}, nil
}

func (s *Context) OwnerKey() (model.OwnerKey, bool) {
	raw, ok := s.sess.Values[ownerKeyKey].(string)
	if !ok || raw == "" {
		return "", false
	}

	return model.OwnerKey(raw), true
}

func (s *Context) SetOwnerKey(key model.OwnerKey) {
	s.sess.Values[ownerKeyKey] = string(key)
}

// PendingOrder decodes the stored pending order. A missing or unreadable
// value reports false; stale session payloads are not an error the shopper
// can act on.
func (s *Context) PendingOrder() (*service.PendingOrder, bool) {
	raw, ok := s.sess.Values[pendingOrderKey].(string)
	if !ok || raw == "" {
		return nil, false
	}

	var pending service.PendingOrder
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, false
	}

	return &pending, true
}

func (s *Context) SetPendingOrder(pending *service.PendingOrder) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode pending order: %w", err)
	}

	s.sess.Values[pendingOrderKey] = string(raw)
	return nil
}

func (s *Context) ClearPendingOrder() {
	delete(s.sess.Values, pendingOrderKey)
}

// ChargeRef reports a gateway charge that was authorized for the pending
// order but whose finalization has not completed yet. While present, payment
// retries must finalize with this reference instead of charging again.
func (s *Context) ChargeRef() (string, bool) {
	ref, ok := s.sess.Values[chargeRefKey].(string)
	if !ok || ref == "" {
		return "", false
	}

	return ref, true
}

func (s *Context) SetChargeRef(ref string) {
	s.sess.Values[chargeRefKey] = ref
}

func (s *Context) ClearChargeRef() {
	delete(s.sess.Values, chargeRefKey)
}

func (s *Context) Save() error {
	return s.sess.Save(s.c.Request(), s.c.Response())
}
