package service

import (
	"context"
	"errors"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

// SaleService реализует покупку: списание баланса и запаса и запись продажи
type SaleService struct {
	drugs    repository.DrugRepository
	accounts repository.AccountRepository
	sales    repository.SaleRepository
	tx       repository.TxManager
}

func NewSaleService(drugs repository.DrugRepository, accounts repository.AccountRepository, sales repository.SaleRepository, tx repository.TxManager) *SaleService {
	return &SaleService{drugs: drugs, accounts: accounts, sales: sales, tx: tx}
}

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNotEnoughStock    = errors.New("not enough stock available")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Buy проверяет количество, запас и баланс и атомарно проводит покупку
func (s *SaleService) Buy(ctx context.Context, customerID, drugID int64, quantity int) (*domain.Sale, error) {
	if drugID <= 0 {
		return nil, ErrInvalidInput
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var created *domain.Sale
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		d, err := s.drugs.GetDrug(ctx, drugID)
		if err != nil {
			return err
		}
		if d.StockQuantity < quantity {
			return ErrNotEnoughStock
		}
		a, err := s.accounts.GetAccount(ctx, customerID)
		if err != nil {
			return err
		}
		total := d.Price.Mul(quantity)
		if a.Balance < total {
			return ErrInsufficientFunds
		}

		a.Balance = a.Balance.Sub(total)
		if err := s.accounts.UpdateAccount(ctx, a); err != nil {
			return err
		}
		d.StockQuantity -= quantity
		if err := s.drugs.UpdateDrug(ctx, d); err != nil {
			return err
		}

		sale := domain.Sale{
			CustomerID:     a.ID,
			CustomerName:   a.Username,
			MedicationID:   d.ID,
			MedicationName: d.Name,
			Quantity:       quantity,
			TotalPrice:     total,
		}
		if err := s.sales.CreateSale(ctx, &sale); err != nil {
			return err
		}
		created = &sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns every sale with current customer and medication names. Names
// recorded at purchase time are kept when the record has since gone away.
func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	sales, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if a, err := s.accounts.GetAccount(ctx, sales[i].CustomerID); err == nil {
			sales[i].CustomerName = a.Username
		}
		if d, err := s.drugs.GetDrug(ctx, sales[i].MedicationID); err == nil {
			sales[i].MedicationName = d.Name
		}
	}
	return sales, nil
}
