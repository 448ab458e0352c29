// Package web is the pharmacy console: server-rendered pages for customers
// and administrators on top of the backend REST API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pharmacy/internal/apiclient"
	"pharmacy/internal/cart"
	"pharmacy/internal/checkout"
	"pharmacy/internal/domain"
	"pharmacy/internal/logging"
	"pharmacy/internal/notice"
	"pharmacy/internal/session"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Deps are the collaborators of the console.
type Deps struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Carts    *cart.Store
	Checkout *checkout.Service
	// Timeout bounds every backend call made while serving one request.
	Timeout time.Duration
	Logger  zerolog.Logger
}

type Server struct {
	engine   *gin.Engine
	api      *apiclient.Client
	sessions *session.Manager
	carts    *cart.Store
	checkout *checkout.Service
	timeout  time.Duration
	logger   zerolog.Logger
}

var funcs = template.FuncMap{
	"money": func(m domain.Money) string { return m.Display() },
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
}

func New(d Deps) (*Server, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	if d.Timeout <= 0 {
		d.Timeout = 10 * time.Second
	}
	if d.Checkout == nil {
		d.Checkout = checkout.New(d.Logger)
	}

	r := gin.New()
	r.Use(logging.Gin(d.Logger), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	s := &Server{
		engine:   r,
		api:      d.API,
		sessions: d.Sessions,
		carts:    d.Carts,
		checkout: d.Checkout,
		timeout:  d.Timeout,
		logger:   d.Logger,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r := s.engine.Group("", s.loadSession)
	r.GET("/", s.index)
	r.GET("/login", s.loginPage)
	r.POST("/login", s.login)
	r.GET("/register", s.registerPage)
	r.POST("/register", s.register)
	r.POST("/logout", s.logout)

	signedIn := r.Group("", s.requireSession)
	signedIn.GET("/me", s.profilePage)
	signedIn.POST("/me", s.updateProfile)

	user := r.Group("/user", s.requireRole(domain.RoleCustomer))
	{
		user.GET("/home", s.userHome)
		user.POST("/cart/add", s.addToCart)
		user.POST("/cart/remove", s.removeFromCart)
		user.POST("/cart/quantity", s.setQuantity)
		user.POST("/cart/buy", s.buy)
		user.POST("/deposit", s.deposit)
	}

	admin := r.Group("/admin", s.requireRole(domain.RoleAdmin))
	{
		admin.GET("/home", s.adminHome)
		admin.GET("/customers", s.customers)
		admin.GET("/sales", s.sales)

		drugPanel(s).mount(admin)
		admin.POST("/drugs/:id/delete", s.deleteDrug)

		employeePanel(s).mount(admin)
		supplierPanel(s).mount(admin)
	}
}

// Session handling

func (s *Server) loadSession(c *gin.Context) {
	sess := s.sessions.Load(c.Request)
	c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
	c.Next()
}

func current(c *gin.Context) *session.Session {
	return session.FromContext(c.Request.Context())
}

func (s *Server) requireSession(c *gin.Context) {
	if !current(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}
	c.Next()
}

// requireRole sends visitors without a session to /login and signed-in users
// of the other role to their own landing page.
func (s *Server) requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := current(c)
		if !sess.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if sess.Role != role {
			c.Redirect(http.StatusSeeOther, session.LandingPath(sess.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// teardown ends the session and forgets its cart.
func (s *Server) teardown(c *gin.Context) {
	if sess := current(c); sess.Authenticated() {
		s.carts.Drop(sess.Token)
	}
	s.sessions.Clear(c.Writer)
}

// Backend access

// client is the API client bound to the caller's token.
func (s *Server) client(c *gin.Context) *apiclient.Client {
	return s.api.WithToken(current(c).Token)
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

// Rendering

type page struct {
	Title   string
	Session *session.Session
	Notice  notice.Notice
	Data    any
}

func (s *Server) page(c *gin.Context, title string, data any) page {
	return page{
		Title:   title,
		Session: current(c),
		Notice:  notice.Take(c.Writer, c.Request, s.sessions.Secure()),
		Data:    data,
	}
}

func (s *Server) render(c *gin.Context, status int, name string, p page) {
	c.HTML(status, name, p)
}

// redirect sends the browser to path and shows n on the page it lands on.
func (s *Server) redirect(c *gin.Context, path string, n notice.Notice) {
	notice.Flash(c.Writer, n, s.sessions.Secure())
	c.Redirect(http.StatusSeeOther, path)
}

// message is the text shown to the user for a failed backend call.
func message(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the pharmacy service did not answer in time"
	}
	return "the pharmacy service is unavailable"
}

// mapErrorToStatus picks the status of a page that could not load its data.
// Backend client errors keep their status; anything else is a gateway error.
func mapErrorToStatus(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// failed reports a backend error after an action: an expired session ends
// it and goes to /login, anything else goes back to path with the message.
func (s *Server) failed(c *gin.Context, path, prefix string, err error) {
	s.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("backend call failed")
	if apiclient.IsUnauthorized(err) {
		s.teardown(c)
		s.redirect(c, "/login", notice.Warn("Your session has expired. Please log in again."))
		return
	}
	s.redirect(c, path, notice.Fail(prefix+message(err)))
}

// failedPage renders name with the error instead of the data it could not
// load. An expired session is handled as in failed.
func (s *Server) failedPage(c *gin.Context, name, title string, data any, err error) {
	s.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("page load failed")
	if apiclient.IsUnauthorized(err) {
		s.teardown(c)
		s.redirect(c, "/login", notice.Warn("Your session has expired. Please log in again."))
		return
	}
	p := s.page(c, title, data)
	p.Notice = notice.Fail(message(err))
	s.render(c, mapErrorToStatus(err), name, p)
}
