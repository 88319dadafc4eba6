package e2etest

import (
	"github.com/swhawkins/LAPOK/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// sessionJar keeps the session and CSRF cookies of the server under test. Cookies set over plain HTTP lose their
// Secure flag so the jar sends them back to a test server without TLS, HTTPS responses are stored untouched.
type sessionJar struct {
	jar *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &sessionJar{jar: jar}, nil
}

func (s *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if u.Scheme == "http" {
		for _, cookie := range cookies {
			cookie.Secure = false
		}
	}
	s.jar.SetCookies(u, cookies)
}

func (s *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

// cookie returns the value of the named cookie the jar would send to u.
func (s *sessionJar) cookie(u *url.URL, name string) (string, bool) {
	for _, c := range s.jar.Cookies(u) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
