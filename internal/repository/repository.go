package repository

import (
	"context"
	"errors"

	"pharmacy/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type DrugRepository interface {
	CreateDrug(ctx context.Context, d *domain.Drug) error
	GetDrug(ctx context.Context, id int64) (*domain.Drug, error)
	UpdateDrug(ctx context.Context, d *domain.Drug) error
	DeleteDrug(ctx context.Context, id int64) error
	ListDrugs(ctx context.Context) ([]domain.Drug, error)
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, a *domain.Account) error
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, a *domain.Account) error
	ListAccounts(ctx context.Context, role domain.Role) ([]domain.Account, error)
}

// TokenRepository maps issued bearer tokens to account ids.
type TokenRepository interface {
	SaveToken(ctx context.Context, token string, accountID int64) error
	LookupToken(ctx context.Context, token string) (int64, error)
	RevokeTokens(ctx context.Context, accountID int64) error
}

type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, e *domain.Employee) error
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

type SupplierRepository interface {
	CreateSupplier(ctx context.Context, s *domain.Supplier) error
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, s *domain.Supplier) error
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

type SaleRepository interface {
	CreateSale(ctx context.Context, s *domain.Sale) error
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

// TxManager runs fn as one unit. The in-memory version holds the store's
// write lock for the whole call.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
