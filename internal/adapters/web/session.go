package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
)

const (
	sessionName = "lojamix"

	keyUserID   = "user_id"
	keyUsername = "username"
	keyCart     = "cart"
)

// NewSessionStore returns the signed cookie store that carries identity,
// cart and flash messages.
func NewSessionStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func (h *Handler) session(c *gin.Context) *sessions.Session {
	sess, err := h.sessions.Get(c.Request, sessionName)
	if err != nil {
		// A tampered or stale cookie yields a fresh session.
		slog.WarnContext(c.Request.Context(), "discarding unreadable session", "error", err)
	}
	return sess
}

func sessionUserID(sess *sessions.Session) (int64, bool) {
	id, ok := sess.Values[keyUserID].(int64)
	return id, ok && id > 0
}

func sessionUsername(sess *sessions.Session) string {
	name, _ := sess.Values[keyUsername].(string)
	return name
}

func signIn(sess *sessions.Session, user *domain.User) {
	sess.Values[keyUserID] = user.ID
	sess.Values[keyUsername] = user.Username
}

func signOut(sess *sessions.Session) {
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyUsername)
}

func flashes(sess *sessions.Session) []string {
	var out []string
	for _, f := range sess.Flashes() {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// sessionCart stores the cart as JSON inside the session. Changes reach the
// visitor only when the session is saved.
type sessionCart struct {
	sess *sessions.Session
}

func (s sessionCart) Load() (domain.Cart, error) {
	raw, ok := s.sess.Values[keyCart].(string)
	if !ok || raw == "" {
		return domain.Cart{}, nil
	}
	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		slog.Warn("discarding undecodable session cart", "error", err)
		return domain.Cart{}, nil
	}
	return cart, nil
}

func (s sessionCart) Save(cart domain.Cart) error {
	if cart.IsEmpty() {
		return s.Clear()
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.sess.Values[keyCart] = string(data)
	return nil
}

func (s sessionCart) Clear() error {
	delete(s.sess.Values, keyCart)
	return nil
}
