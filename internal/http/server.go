package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pharmacy/internal/domain"
	"pharmacy/internal/logging"
	"pharmacy/internal/repository"
	"pharmacy/internal/service"
)

type Server struct {
	engine  *gin.Engine
	svc     *service.Services
	logger  zerolog.Logger
	origins []string
}

type Option func(*Server)

// WithOrigins sets the origins allowed by CORS. The default allows any.
func WithOrigins(origins ...string) Option { return func(s *Server) { s.origins = origins } }

func NewServer(svc *service.Services, logger zerolog.Logger, opts ...Option) *Server {
	r := gin.New()
	r.Use(logging.Gin(logger), gin.Recovery())
	s := &Server{engine: r, svc: svc, logger: logger, origins: []string{"*"}}
	for _, o := range opts {
		o(s)
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

// Handler is the engine behind CORS, for browser clients.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(s.engine)
}

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/users", s.register)

	authed := api.Group("", s.authenticate)
	{
		authed.GET("/users/me", s.me)
		authed.PUT("/users/me", s.updateMe)
		authed.GET("/drugs", s.listDrugs)
		authed.GET("/drugs/:id", s.getDrug)

		customer := authed.Group("", requireRole(domain.RoleCustomer))
		customer.POST("/users/deposit", s.deposit)
		customer.POST("/users/buy/:id", s.buy)

		admin := authed.Group("", requireRole(domain.RoleAdmin))
		admin.POST("/drugs", s.createDrug)
		admin.PUT("/drugs/:id", s.updateDrug)
		admin.DELETE("/drugs/:id", s.deleteDrug)

		admin.GET("/customers", s.listCustomers)
		admin.GET("/users/customers", s.listCustomers)

		admin.GET("/employees", s.listEmployees)
		admin.GET("/employees/:id", s.getEmployee)
		admin.POST("/employees", s.createEmployee)
		admin.PUT("/employees/:id", s.updateEmployee)

		admin.GET("/suppliers", s.listSuppliers)
		admin.GET("/suppliers/:id", s.getSupplier)
		admin.POST("/suppliers", s.createSupplier)
		admin.PUT("/suppliers/:id", s.updateSupplier)

		admin.GET("/sales", s.listSales)
	}
}

const userKey = "user"

// authenticate resolves the bearer token to the calling account.
func (s *Server) authenticate(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		abort(c, service.ErrUnauthorized)
		return
	}
	u, err := s.svc.Accounts.Authenticate(c, strings.TrimSpace(token))
	if err != nil {
		abort(c, err)
		return
	}
	c.Set(userKey, u)
	c.Next()
}

func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller(c).Role != role {
			abort(c, service.ErrForbidden)
			return
		}
		c.Next()
	}
}

// caller is the account set by authenticate.
func caller(c *gin.Context) *domain.User {
	return c.MustGet(userKey).(*domain.User)
}

func fail(c *gin.Context, err error) {
	c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNotEnoughStock),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInvalidCard),
		errors.Is(err, service.ErrNonPositiveAmount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
