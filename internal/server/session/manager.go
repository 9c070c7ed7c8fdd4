package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/mazout/internal/config"
)

const (
	DefaultCookieName   = "_sid"
	orderCookieName     = "_sale_order_id"
	lastOrderCookieName = "_sale_last_order_id"

	orderTTL = 2 * time.Hour
)

// Manager manages the auth and order cookies. The auth cookie carries
// an opaque random token that is validated server-side on every use;
// the order cookies carry snowflake ids.
type Manager struct {
	cookieName string
	secure     bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cookieName: DefaultCookieName,
		secure:     cfg.AuthCookieSecure,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// SetToken binds the session cookie to an issued session token.
func (m *Manager) SetToken(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, maxAge, "/", "", m.secure, true)
}

// Token returns the raw session token, if any.
func (m *Manager) Token(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// SetOrder records the order being checked out.
func (m *Manager) SetOrder(c *gin.Context, orderID snowflake.ID) {
	m.set(c, orderCookieName, orderID.String(), orderTTL)
	m.set(c, lastOrderCookieName, orderID.String(), orderTTL)
}

// Order returns the order currently in checkout, if any.
func (m *Manager) Order(c *gin.Context) (snowflake.ID, bool) {
	return m.readID(c, orderCookieName)
}

// LastOrder returns the most recently created order, if any.
func (m *Manager) LastOrder(c *gin.Context) (snowflake.ID, bool) {
	return m.readID(c, lastOrderCookieName)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
	c.SetCookie(orderCookieName, "", -1, "/", "", m.secure, true)
	c.SetCookie(lastOrderCookieName, "", -1, "/", "", m.secure, true)
}

func (m *Manager) set(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", m.secure, true)
}

func (m *Manager) readID(c *gin.Context, name string) (snowflake.ID, bool) {
	value, err := c.Cookie(name)
	if err != nil {
		return 0, false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	id, err := snowflake.ParseString(value)
	if err != nil {
		return 0, false
	}
	return id, true
}
