package service

import (
	"context"
	"fmt"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

// Services is everything the REST API needs.
type Services struct {
	Accounts *AccountService
	Drugs    *DrugService
	Sales    *SaleService
	Staff    *StaffService
}

// NewInMemory wires every service to one fresh MemoryStore.
func NewInMemory() *Services {
	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	return &Services{
		Accounts: NewAccountService(store, store, tx),
		Drugs:    NewDrugService(store),
		Sales:    NewSaleService(store, store, store, tx),
		Staff:    NewStaffService(store, store),
	}
}

// Demo credentials created by Seed.
const (
	SeedAdminUsername    = "admin"
	SeedAdminPassword    = "admin"
	SeedCustomerUsername = "customer"
	SeedCustomerPassword = "customer"
)

// Seed loads an admin, a customer with 100.00 on the balance, a small
// catalog and some staff.
func (s *Services) Seed(ctx context.Context) error {
	if _, err := s.Accounts.Register(ctx, domain.NewUser{Username: SeedAdminUsername, Password: SeedAdminPassword, Role: domain.RoleAdmin}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	customer, err := s.Accounts.Register(ctx, domain.NewUser{Username: SeedCustomerUsername, Password: SeedCustomerPassword})
	if err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}
	if _, err := s.Accounts.Deposit(ctx, customer.ID, domain.DepositInput{
		CardNumber: "4111111111111111",
		ExpiryDate: "12/30",
		CVC:        "123",
		Amount:     10000,
	}); err != nil {
		return fmt.Errorf("seed balance: %w", err)
	}

	drugs := []domain.DrugInput{
		{Name: "Aspirin", Manufacturer: "Bayer", Price: 999, ExpirationDate: "2027-03-01", StockQuantity: 50},
		{Name: "Ibuprofen", Manufacturer: "Pfizer", Price: 450, ExpirationDate: "2027-06-15", StockQuantity: 30},
		{Name: "Paracetamol", Manufacturer: "GSK", Price: 300, ExpirationDate: "2026-12-31", StockQuantity: 5},
		{Name: "Amoxicillin", Manufacturer: "Teva", Price: 1275, ExpirationDate: "2026-11-30", StockQuantity: 0},
	}
	for _, d := range drugs {
		if _, err := s.Drugs.Create(ctx, d); err != nil {
			return fmt.Errorf("seed drug %s: %w", d.Name, err)
		}
	}

	if _, err := s.Staff.CreateEmployee(ctx, domain.EmployeeInput{Name: "Maria Lopez", Position: "Pharmacist", Salary: 420000, HireDate: "2021-04-01"}); err != nil {
		return fmt.Errorf("seed employee: %w", err)
	}
	if _, err := s.Staff.CreateSupplier(ctx, domain.SupplierInput{Name: "MedSupply Co", Phone: "+1 555 0100", Email: "orders@medsupply.example", Address: "12 Harbor Rd"}); err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}
	return nil
}
