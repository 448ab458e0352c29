package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy/internal/domain"
	"pharmacy/internal/notice"
	"pharmacy/internal/session"
)

func (s *Server) index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, session.LandingPath(current(c).Role))
}

func (s *Server) loginPage(c *gin.Context) {
	if sess := current(c); sess.Authenticated() {
		c.Redirect(http.StatusSeeOther, session.LandingPath(sess.Role))
		return
	}
	s.render(c, http.StatusOK, "login.gohtml", s.page(c, "Log in", nil))
}

// login exchanges the credentials for a token and sends the user to the
// landing page of their role.
func (s *Server) login(c *gin.Context) {
	var in domain.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		s.redirect(c, "/login", notice.Fail(domain.Describe(err)))
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()

	res, err := s.api.Login(ctx, in)
	if err != nil {
		s.logger.Info().Err(err).Str("username", in.Username).Msg("login rejected")
		s.redirect(c, "/login", notice.Fail("Login failed: "+message(err)))
		return
	}
	role, ok := domain.ParseRole(res.Role)
	if !ok || res.Token == "" {
		s.logger.Warn().Str("role", res.Role).Msg("login returned unusable session")
		s.redirect(c, "/login", notice.Fail("Login failed: unknown role "+res.Role))
		return
	}
	s.sessions.Start(c.Writer, res.Token, role)
	s.logger.Info().Str("username", in.Username).Str("role", string(role)).Msg("signed in")
	c.Redirect(http.StatusSeeOther, session.LandingPath(role))
}

func (s *Server) registerPage(c *gin.Context) {
	s.render(c, http.StatusOK, "register.gohtml", s.page(c, "Register", nil))
}

func (s *Server) register(c *gin.Context) {
	var in domain.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		s.redirect(c, "/register", notice.Fail(domain.Describe(err)))
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()

	err := s.api.Register(ctx, domain.NewUser{Username: in.Username, Password: in.Password, Role: domain.RoleCustomer})
	if err != nil {
		s.redirect(c, "/register", notice.Fail("Registration failed: "+message(err)))
		return
	}
	s.redirect(c, "/login", notice.Ok("Registration successful! Please log in."))
}

func (s *Server) logout(c *gin.Context) {
	s.teardown(c)
	s.redirect(c, "/login", notice.Ok("You have been logged out."))
}

type profileData struct {
	User *domain.User
}

func (s *Server) profilePage(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	u, err := s.client(c).Me(ctx)
	if err != nil {
		s.failedPage(c, "profile.gohtml", "Profile", profileData{User: &domain.User{}}, err)
		return
	}
	s.render(c, http.StatusOK, "profile.gohtml", s.page(c, "Profile", profileData{User: u}))
}

// updateProfile saves the new username and password, then signs in again
// with them since the backend invalidates the old token. Without a new
// password there is nothing to sign in with, so the user is sent to /login.
func (s *Server) updateProfile(c *gin.Context) {
	var in domain.ProfileInput
	if err := c.ShouldBind(&in); err != nil {
		s.redirect(c, "/me", notice.Fail(domain.Describe(err)))
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()

	old := current(c)
	if err := s.client(c).UpdateMe(ctx, in); err != nil {
		s.failed(c, "/me", "Update failed: ", err)
		return
	}

	if in.Password == "" {
		s.teardown(c)
		s.redirect(c, "/login", notice.Ok("Profile updated. Please log in again."))
		return
	}
	var (
		role domain.Role
		ok   bool
	)
	res, err := s.api.Login(ctx, domain.LoginInput{Username: in.Username, Password: in.Password})
	if err == nil {
		role, ok = domain.ParseRole(res.Role)
	}
	if !ok {
		s.logger.Warn().Err(err).Msg("re-login after profile update failed")
		s.teardown(c)
		s.redirect(c, "/login", notice.Warn("Profile updated, but signing in again failed. Please log in."))
		return
	}
	s.carts.Move(old.Token, res.Token)
	s.sessions.Start(c.Writer, res.Token, role)
	s.redirect(c, session.LandingPath(role), notice.Ok("Profile updated."))
}
