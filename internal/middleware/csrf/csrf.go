package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
)

// Config tunes the double-submit CSRF check. Zero values fall back to the
// defaults below.
type Config struct {
	CookieName string
	HeaderName string

	CookiePath string
	Domain     string
	Secure     bool
	SameSite   http.SameSite
	MaxAge     time.Duration

	// EnforceSameOrigin additionally requires the Origin (or Referer)
	// header of mutating requests to match the request host.
	EnforceSameOrigin bool

	// SkipPaths lists exact request paths exempt from the check, e.g.
	// the login endpoint a fresh client hits before it holds a token.
	SkipPaths []string
}

func DefaultConfig() Config {
	return Config{
		CookieName:        "XSRF-TOKEN",
		HeaderName:        "X-CSRF-Token",
		CookiePath:        "/",
		Secure:            true,
		SameSite:          http.SameSiteLaxMode,
		MaxAge:            24 * time.Hour,
		EnforceSameOrigin: true,
	}
}

// Middleware issues a CSRF cookie on every response and requires mutating
// requests to echo it back in the configured header. The session cookies
// are HttpOnly, so a cross-site page cannot read the token to forge the
// header.
func Middleware(cfg Config) echo.MiddlewareFunc {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = def.HeaderName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = def.CookiePath
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = def.SameSite
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = def.MaxAge
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if _, ok := skip[req.URL.Path]; ok {
				return next(c)
			}

			token := cookieValue(req, cfg.CookieName)
			if token == "" {
				var err error
				token, err = newToken(32)
				if err != nil {
					return httperr.Internal()
				}
			}
			setTokenCookie(c, cfg, token)

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				c.Response().Header().Set(cfg.HeaderName, token)
				return next(c)
			}

			if cfg.EnforceSameOrigin && !sameOrigin(req) {
				return httperr.Forbidden("cross-origin request rejected")
			}

			if !tokensMatch(token, req.Header.Get(cfg.HeaderName)) {
				return httperr.Forbidden("missing or invalid CSRF token")
			}

			return next(c)
		}
	}
}

func newToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func setTokenCookie(c echo.Context, cfg Config, token string) {
	// Deliberately not HttpOnly: the browser client reads this cookie to
	// fill the request header.
	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     cfg.CookiePath,
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HttpOnly: false,
		MaxAge:   int(cfg.MaxAge.Seconds()),
		SameSite: cfg.SameSite,
	})
}

func cookieValue(req *http.Request, name string) string {
	ck, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func tokensMatch(want, got string) bool {
	if want == "" || len(want) != len(got) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = r.Header.Get("Referer")
	}
	if origin == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, schemeOf(r)) && strings.EqualFold(u.Host, r.Host)
}

func schemeOf(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
