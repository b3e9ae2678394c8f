package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/pickles-ecom/internal/httpx"
)

const ctxKey = "session"

type Options struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Session is the request's view of one stored session.
type Session struct {
	ID   string
	Data *Data

	store Store
	opts  Options
}

// Middleware loads the session named by the cookie, creating a new one
// when the cookie is missing or unknown. A store failure aborts the
// request with a 500.
func Middleware(store Store, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := &Session{store: store, opts: opts}

		if id, err := c.Cookie(opts.CookieName); err == nil && id != "" {
			d, err := store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				s.ID, s.Data = id, d
			case !errors.Is(err, ErrNotFound):
				httpx.Fail(c, err)
				return
			}
		}
		if s.Data == nil {
			s.ID = uuid.NewString()
			s.Data = &Data{}
			s.setCookie(c)
		}

		c.Set(ctxKey, s)
		c.Next()
	}
}

// Get returns the session loaded by Middleware.
func Get(c *gin.Context) *Session {
	return c.MustGet(ctxKey).(*Session)
}

// Save writes the session back to the store.
func (s *Session) Save(c *gin.Context) error {
	return s.store.Save(c.Request.Context(), s.ID, s.Data)
}

// Renew moves the session data to a fresh id. Called on login.
func (s *Session) Renew(c *gin.Context) error {
	old := s.ID
	s.ID = uuid.NewString()
	if err := s.store.Save(c.Request.Context(), s.ID, s.Data); err != nil {
		return err
	}
	_ = s.store.Delete(c.Request.Context(), old)
	s.setCookie(c)
	return nil
}

func (s *Session) setCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.opts.CookieName, s.ID, int(s.opts.MaxAge/time.Second), "/", "", s.opts.Secure, true)
}
