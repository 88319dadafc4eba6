package e2etest

import (
	"github.com/stretchr/testify/require"
	"net/http"
	"net/url"
	"testing"
)

func TestSessionJar_SecureOnlyDroppedOverHTTP(t *testing.T) {
	jar, err := newSessionJar()
	require.NoError(t, err)

	plain := &url.URL{Scheme: "http", Host: "localhost"}
	jar.SetCookies(plain, []*http.Cookie{{Name: "lap_session", Value: "abc", Secure: true}})
	value, ok := jar.cookie(plain, "lap_session")
	require.True(t, ok)
	require.Equal(t, "abc", value)

	tls := &url.URL{Scheme: "https", Host: "example.com"}
	jar.SetCookies(tls, []*http.Cookie{{Name: "csrf_token", Value: "xyz", Secure: true}})
	_, ok = jar.cookie(&url.URL{Scheme: "http", Host: "example.com"}, "csrf_token")
	require.False(t, ok, "secure cookie from https must not be sent over http")
	value, ok = jar.cookie(tls, "csrf_token")
	require.True(t, ok)
	require.Equal(t, "xyz", value)

	_, ok = jar.cookie(plain, "missing")
	require.False(t, ok)
}
