package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pharmacy/internal/domain"
)

// Auth and account handlers

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.LoginResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req domain.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	res, err := s.svc.Accounts.Login(c, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Register account
// @Tags users
// @Accept json
// @Produce json
// @Param input body domain.NewUser true "Account"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (s *Server) register(c *gin.Context) {
	var req domain.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	u, err := s.svc.Accounts.Register(c, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Current account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (s *Server) me(c *gin.Context) {
	u, err := s.svc.Accounts.Me(c, caller(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateMeReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// @Summary Update current account
// @Description Renames the account and optionally changes the password. Existing tokens are revoked.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body updateMeReq true "Profile"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/me [put]
func (s *Server) updateMe(c *gin.Context) {
	var req updateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username is required")
		return
	}
	u, err := s.svc.Accounts.UpdateMe(c, caller(c).ID, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Deposit to balance
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body domain.DepositInput true "Card and amount"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /users/deposit [post]
func (s *Server) deposit(c *gin.Context) {
	var req domain.DepositInput
	// Field errors are left to the service, which names them card or amount.
	var verrs validator.ValidationErrors
	if err := c.ShouldBindJSON(&req); err != nil && !errors.As(err, &verrs) {
		badRequest(c, "invalid json")
		return
	}
	u, err := s.svc.Accounts.Deposit(c, caller(c).ID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Buy medication
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drug ID"
// @Param input body domain.BuyInput true "Quantity"
// @Success 200 {object} domain.Sale
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/buy/{id} [post]
func (s *Server) buy(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	var req domain.BuyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	sale, err := s.svc.Sales.Buy(c, caller(c).ID, id, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// @Summary List customers
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Failure 403 {object} map[string]string
// @Router /customers [get]
func (s *Server) listCustomers(c *gin.Context) {
	list, err := s.svc.Accounts.ListCustomers(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Drug handlers

// @Summary List drugs
// @Tags drugs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Drug
// @Router /drugs [get]
func (s *Server) listDrugs(c *gin.Context) {
	list, err := s.svc.Drugs.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get drug by id
// @Tags drugs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drug ID"
// @Success 200 {object} domain.Drug
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drugs/{id} [get]
func (s *Server) getDrug(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	d, err := s.svc.Drugs.GetByID(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Create drug
// @Tags drugs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body domain.DrugInput true "Drug"
// @Success 201 {object} domain.Drug
// @Failure 400 {object} map[string]string
// @Router /drugs [post]
func (s *Server) createDrug(c *gin.Context) {
	var req domain.DrugInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domain.Describe(err))
		return
	}
	d, err := s.svc.Drugs.Create(c, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// @Summary Update drug
// @Tags drugs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drug ID"
// @Param input body domain.DrugInput true "Drug"
// @Success 200 {object} domain.Drug
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drugs/{id} [put]
func (s *Server) updateDrug(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	var req domain.DrugInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domain.Describe(err))
		return
	}
	d, err := s.svc.Drugs.Update(c, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Delete drug
// @Tags drugs
// @Security BearerAuth
// @Param id path int true "Drug ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drugs/{id} [delete]
func (s *Server) deleteDrug(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	if err := s.svc.Drugs.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Staff handlers

// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Employee
// @Router /employees [get]
func (s *Server) listEmployees(c *gin.Context) {
	list, err := s.svc.Staff.ListEmployees(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get employee by id
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} map[string]string
// @Router /employees/{id} [get]
func (s *Server) getEmployee(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	e, err := s.svc.Staff.GetEmployee(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary Create employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body domain.EmployeeInput true "Employee"
// @Success 201 {object} domain.Employee
// @Failure 400 {object} map[string]string
// @Router /employees [post]
func (s *Server) createEmployee(c *gin.Context) {
	var req domain.EmployeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domain.Describe(err))
		return
	}
	e, err := s.svc.Staff.CreateEmployee(c, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// @Summary Update employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param input body domain.EmployeeInput true "Employee"
// @Success 200 {object} domain.Employee
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{id} [put]
func (s *Server) updateEmployee(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	var req domain.EmployeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domain.Describe(err))
		return
	}
	e, err := s.svc.Staff.UpdateEmployee(c, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Supplier
// @Router /suppliers [get]
func (s *Server) listSuppliers(c *gin.Context) {
	list, err := s.svc.Staff.ListSuppliers(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get supplier by id
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} map[string]string
// @Router /suppliers/{id} [get]
func (s *Server) getSupplier(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	sp, err := s.svc.Staff.GetSupplier(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// @Summary Create supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body domain.SupplierInput true "Supplier"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} map[string]string
// @Router /suppliers [post]
func (s *Server) createSupplier(c *gin.Context) {
	var req domain.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domain.Describe(err))
		return
	}
	sp, err := s.svc.Staff.CreateSupplier(c, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

// @Summary Update supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param input body domain.SupplierInput true "Supplier"
// @Success 200 {object} domain.Supplier
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /suppliers/{id} [put]
func (s *Server) updateSupplier(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	var req domain.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domain.Describe(err))
		return
	}
	sp, err := s.svc.Staff.UpdateSupplier(c, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

// @Summary List sales
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Sale
// @Router /sales [get]
func (s *Server) listSales(c *gin.Context) {
	list, err := s.svc.Sales.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
