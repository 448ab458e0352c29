package service

import (
	"context"
	"strings"
	"time"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

// StaffService manages employees and suppliers.
type StaffService struct {
	employees repository.EmployeeRepository
	suppliers repository.SupplierRepository
}

func NewStaffService(employees repository.EmployeeRepository, suppliers repository.SupplierRepository) *StaffService {
	return &StaffService{employees: employees, suppliers: suppliers}
}

func validateEmployee(in domain.EmployeeInput) (domain.EmployeeInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	if in.Name == "" || in.Position == "" || in.Salary < 0 {
		return in, ErrInvalidInput
	}
	if in.HireDate != "" {
		if _, err := time.Parse(time.DateOnly, in.HireDate); err != nil {
			return in, ErrInvalidInput
		}
	}
	return in, nil
}

func (s *StaffService) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	in, err := validateEmployee(in)
	if err != nil {
		return nil, err
	}
	e := domain.Employee{Name: in.Name, Position: in.Position, Salary: in.Salary, HireDate: in.HireDate}
	if err := s.employees.CreateEmployee(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *StaffService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.employees.GetEmployee(ctx, id)
}

func (s *StaffService) UpdateEmployee(ctx context.Context, id int64, in domain.EmployeeInput) (*domain.Employee, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	in, err := validateEmployee(in)
	if err != nil {
		return nil, err
	}
	e := domain.Employee{ID: id, Name: in.Name, Position: in.Position, Salary: in.Salary, HireDate: in.HireDate}
	if err := s.employees.UpdateEmployee(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *StaffService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.ListEmployees(ctx)
}

func validateSupplier(in domain.SupplierInput) (domain.SupplierInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrInvalidInput
	}
	return in, nil
}

func (s *StaffService) CreateSupplier(ctx context.Context, in domain.SupplierInput) (*domain.Supplier, error) {
	in, err := validateSupplier(in)
	if err != nil {
		return nil, err
	}
	sp := domain.Supplier{Name: in.Name, Phone: in.Phone, Email: in.Email, Address: in.Address}
	if err := s.suppliers.CreateSupplier(ctx, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *StaffService) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.suppliers.GetSupplier(ctx, id)
}

func (s *StaffService) UpdateSupplier(ctx context.Context, id int64, in domain.SupplierInput) (*domain.Supplier, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	in, err := validateSupplier(in)
	if err != nil {
		return nil, err
	}
	sp := domain.Supplier{ID: id, Name: in.Name, Phone: in.Phone, Email: in.Email, Address: in.Address}
	if err := s.suppliers.UpdateSupplier(ctx, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *StaffService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.ListSuppliers(ctx)
}
