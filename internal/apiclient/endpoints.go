package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"pharmacy/internal/domain"
)

// Auth and account.

func (c *Client) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.send(ctx, http.MethodPost, "/auth/login", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in domain.NewUser) error {
	return c.send(ctx, http.MethodPost, "/users", in, nil, false)
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, in domain.ProfileInput) error {
	return c.do(ctx, http.MethodPut, "/users/me", in, nil)
}

func (c *Client) Deposit(ctx context.Context, in domain.DepositInput) error {
	return c.do(ctx, http.MethodPost, "/users/deposit", in, nil)
}

// Buy purchases quantity units of one medication.
func (c *Client) Buy(ctx context.Context, drugID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/buy/%d", drugID), domain.BuyInput{Quantity: quantity}, nil)
}

// Drugs.

func (c *Client) ListDrugs(ctx context.Context) ([]domain.Drug, error) {
	var out []domain.Drug
	if err := c.do(ctx, http.MethodGet, "/drugs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDrug(ctx context.Context, id int64) (*domain.Drug, error) {
	var out domain.Drug
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/drugs/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDrug(ctx context.Context, in domain.DrugInput) error {
	return c.do(ctx, http.MethodPost, "/drugs", in, nil)
}

func (c *Client) UpdateDrug(ctx context.Context, id int64, in domain.DrugInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/drugs/%d", id), in, nil)
}

func (c *Client) DeleteDrug(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/drugs/%d", id), nil, nil)
}

// Staff, customers and sales.

func (c *Client) ListCustomers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, in domain.EmployeeInput) error {
	return c.do(ctx, http.MethodPost, "/employees", in, nil)
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), in, nil)
}

func (c *Client) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	if err := c.do(ctx, http.MethodGet, "/suppliers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/suppliers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, in domain.SupplierInput) error {
	return c.do(ctx, http.MethodPost, "/suppliers", in, nil)
}

func (c *Client) UpdateSupplier(ctx context.Context, id int64, in domain.SupplierInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/suppliers/%d", id), in, nil)
}

func (c *Client) ListSales(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
