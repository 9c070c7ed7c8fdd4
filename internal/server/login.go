package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/mazout/internal/customer/domain"
	"go.uber.org/zap"
)

type loginFormData struct {
	Login string
	Error string
}

// LoginForm renders the login page, prefilled when the visitor was
// redirected here with a known address.
func (s *Server) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login_form.html", loginFormData{
		Login: c.Query("login"),
	})
}

// Login verifies the credentials and issues a session token.
func (s *Server) Login(c *gin.Context) {
	form := loginFormData{Login: c.PostForm("login")}
	password := c.PostForm("password")

	account, err := s.customerSvc.Authenticate(c.Request.Context(), form.Login, password)
	if err != nil {
		if !errors.Is(err, customerdomain.ErrInvalidCredentials) {
			s.log.Error("login failed", zap.Error(err))
		}
		form.Error = "e-mail ou mot de passe incorrect"
		c.HTML(http.StatusOK, "login_form.html", form)
		return
	}

	sess, err := s.customerSvc.StartSession(c.Request.Context(), account.ID)
	if err != nil {
		s.log.Error("session start after login failed",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
		form.Error = "une erreur technique est survenue, veuillez réessayer"
		c.HTML(http.StatusOK, "login_form.html", form)
		return
	}

	s.sessions.SetToken(c, sess.RawToken, sess.ExpiresAt)
	c.Redirect(http.StatusFound, "/commande-03")
}

// Logout revokes the current session and clears the cookies.
func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.Token(c); ok {
		if err := s.customerSvc.EndSession(c.Request.Context(), token); err != nil {
			s.log.Warn("logout on invalid session", zap.Error(err))
		}
	}
	s.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/web/login")
}
