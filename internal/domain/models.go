package domain

import (
	"strings"
	"time"
)

// Role is the access tag the backend attaches to an account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole accepts either role in any letter case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCustomer:
		return RoleCustomer, true
	default:
		return "", false
	}
}

// Drug is a medication record as served by GET /drugs.
type Drug struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Manufacturer   string `json:"manufacturer"`
	Price          Money  `json:"price"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	StockQuantity  int    `json:"stockQuantity"`
	Available      bool   `json:"available"`
}

// User is the account view returned by /users/me and /customers.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Balance  Money  `json:"balance"`
}

// Account is a User plus its credential, kept only by the backend stand-in.
type Account struct {
	User
	PasswordHash string `json:"-"`
}

type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Salary   Money  `json:"salary"`
	HireDate string `json:"hireDate,omitempty"`
}

type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Sale struct {
	ID             int64     `json:"id"`
	CustomerID     int64     `json:"customerId"`
	CustomerName   string    `json:"customerName"`
	MedicationID   int64     `json:"medicationId"`
	MedicationName string    `json:"medicationName"`
	Quantity       int       `json:"quantity"`
	TotalPrice     Money     `json:"totalPrice"`
	SaleDate       time.Time `json:"saleDate"`
}

// Inputs. Form tags bind console forms, json tags the REST payloads.

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type RegisterInput struct {
	Username        string `form:"username" binding:"required,min=3"`
	Password        string `form:"password" binding:"required,min=4"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=Password"`
}

// NewUser is the POST /users payload.
type NewUser struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role,omitempty"`
}

// ProfileInput updates the signed-in account. An empty password keeps the
// current one.
type ProfileInput struct {
	Username        string `json:"username" form:"username" binding:"required"`
	Password        string `json:"password,omitempty" form:"password"`
	ConfirmPassword string `json:"-" form:"confirmPassword" binding:"eqfield=Password"`
}

// DepositInput is a card top-up; the expiry is MM/YY.
type DepositInput struct {
	CardNumber string `json:"cardNumber" form:"cardNumber" binding:"required,len=16,number"`
	ExpiryDate string `json:"expiryDate" form:"expiryDate" binding:"required,datetime=01/06"`
	CVC        string `json:"cvc" form:"cvc" binding:"required,len=3,number"`
	Amount     Money  `json:"amount" form:"amount" binding:"gt=0"`
}

type BuyInput struct {
	Quantity int `json:"quantity"`
}

type DrugInput struct {
	Name           string `json:"name" form:"name" binding:"required"`
	Manufacturer   string `json:"manufacturer" form:"manufacturer" binding:"required"`
	Price          Money  `json:"price" form:"price" binding:"gte=0"`
	ExpirationDate string `json:"expirationDate,omitempty" form:"expirationDate" binding:"omitempty,datetime=2006-01-02"`
	StockQuantity  int    `json:"stock_quantity" form:"stockQuantity" binding:"gte=0"`
}

type EmployeeInput struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Position string `json:"position" form:"position" binding:"required"`
	Salary   Money  `json:"salary" form:"salary" binding:"gte=0"`
	HireDate string `json:"hireDate,omitempty" form:"hireDate" binding:"omitempty,datetime=2006-01-02"`
}

type SupplierInput struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email" binding:"omitempty,email"`
	Address string `json:"address" form:"address"`
}

func (d Drug) Input() DrugInput {
	return DrugInput{Name: d.Name, Manufacturer: d.Manufacturer, Price: d.Price, ExpirationDate: d.ExpirationDate, StockQuantity: d.StockQuantity}
}

func (e Employee) Input() EmployeeInput {
	return EmployeeInput{Name: e.Name, Position: e.Position, Salary: e.Salary, HireDate: e.HireDate}
}

func (s Supplier) Input() SupplierInput {
	return SupplierInput{Name: s.Name, Phone: s.Phone, Email: s.Email, Address: s.Address}
}
