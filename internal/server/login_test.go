package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/mazout/internal/customer/domain"
	"github.com/stretchr/testify/require"
)

func loginForm() url.Values {
	return url.Values{
		"login":    {"jean@example.be"},
		"password": {"s3cret"},
	}
}

func TestLoginFormPrefillsLogin(t *testing.T) {
	s := newTestServer(testServerOptions{})

	req := httptest.NewRequest(http.MethodGet, "/web/login?login=jean%40example.be", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "jean@example.be")
}

func TestLoginSuccess(t *testing.T) {
	accounts := &fakeCustomerService{
		customer: &customerdomain.Customer{ID: snowflake.ID(7)},
		account:  &customerdomain.Account{ID: snowflake.ID(70), CustomerID: snowflake.ID(7)},
	}
	s := newTestServer(testServerOptions{accounts: accounts})

	w := postForm(s, "/web/login", loginForm())

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/commande-03", w.Header().Get("Location"))
	require.Equal(t, []snowflake.ID{70}, accounts.sessionStarts)

	var sawSession bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "_sid" && cookie.Value == testSessionToken {
			sawSession = true
		}
	}
	require.True(t, sawSession, "expected session cookie after login")
}

func TestLoginInvalidCredentialsRerenders(t *testing.T) {
	accounts := &fakeCustomerService{}
	s := newTestServer(testServerOptions{accounts: accounts})

	w := postForm(s, "/web/login", loginForm())

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "incorrect")
	require.Empty(t, accounts.sessionStarts)
}

func TestLoginSessionFailureRerenders(t *testing.T) {
	accounts := &fakeCustomerService{
		customer:   &customerdomain.Customer{ID: snowflake.ID(7)},
		account:    &customerdomain.Account{ID: snowflake.ID(70), CustomerID: snowflake.ID(7)},
		sessionErr: errBoom,
	}
	s := newTestServer(testServerOptions{accounts: accounts})

	w := postForm(s, "/web/login", loginForm())

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "technique")
}

func TestLogoutRevokesSession(t *testing.T) {
	accounts := &fakeCustomerService{
		customer: &customerdomain.Customer{ID: snowflake.ID(7)},
		account:  &customerdomain.Account{ID: snowflake.ID(70), CustomerID: snowflake.ID(7)},
	}
	s := newTestServer(testServerOptions{accounts: accounts})

	req := httptest.NewRequest(http.MethodPost, "/web/logout", nil)
	req.AddCookie(&http.Cookie{Name: "_sid", Value: testSessionToken})
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/web/login", w.Header().Get("Location"))
	require.True(t, accounts.sessionEnded)

	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "_sid" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "expected session cookie cleared")
}
