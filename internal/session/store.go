package session

import (
	"encoding/gob"
	"net/http"

	"timepiece-store/internal/domain"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "timepiece_session"
	cartKey     = "cart"
	userKey     = "user_id"
)

func init() {
	// Cart lines travel through the cookie session, which encodes with gob.
	gob.Register([]domain.CartLine{})
}

// Store wraps the cookie session backing both the cart and the signed-in
// user reference.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options.HttpOnly = true
	cs.Options.SameSite = http.SameSiteLaxMode
	cs.Options.Path = "/"
	return &Store{cookies: cs}
}

// Cart loads the request's cart. A missing or undecodable session yields an
// empty cart rather than an error; the cookie store re-issues on save.
func (s *Store) Cart(r *http.Request) *Cart {
	sess, _ := s.cookies.Get(r, sessionName)
	if lines, ok := sess.Values[cartKey].([]domain.CartLine); ok {
		return NewCart(lines)
	}
	return NewCart(nil)
}

// SaveCart writes the cart back into the session cookie. Every mutating
// handler must call this before responding.
func (s *Store) SaveCart(r *http.Request, w http.ResponseWriter, c *Cart) error {
	sess, _ := s.cookies.Get(r, sessionName)
	if c.Len() == 0 {
		delete(sess.Values, cartKey)
	} else {
		sess.Values[cartKey] = c.Lines()
	}
	return sess.Save(r, w)
}

// UserID returns the signed-in user's id, or nil for anonymous sessions.
func (s *Store) UserID(r *http.Request) *int64 {
	sess, _ := s.cookies.Get(r, sessionName)
	if id, ok := sess.Values[userKey].(int64); ok {
		return &id
	}
	return nil
}

func (s *Store) SetUserID(r *http.Request, w http.ResponseWriter, id int64) error {
	sess, _ := s.cookies.Get(r, sessionName)
	sess.Values[userKey] = id
	return sess.Save(r, w)
}

func (s *Store) ClearUser(r *http.Request, w http.ResponseWriter) error {
	sess, _ := s.cookies.Get(r, sessionName)
	delete(sess.Values, userKey)
	return sess.Save(r, w)
}
