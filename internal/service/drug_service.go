package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

// DrugService инкапсулирует бизнес-логику вокруг медикаментов
type DrugService struct {
	repo repository.DrugRepository
}

func NewDrugService(repo repository.DrugRepository) *DrugService {
	return &DrugService{repo: repo}
}

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNegativePrice = errors.New("price cannot be negative")
)

func validateDrug(in domain.DrugInput) (domain.DrugInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Manufacturer = strings.TrimSpace(in.Manufacturer)
	if in.Price < 0 {
		return in, ErrNegativePrice
	}
	if in.Name == "" || in.StockQuantity < 0 {
		return in, ErrInvalidInput
	}
	if in.ExpirationDate != "" {
		if _, err := time.Parse(time.DateOnly, in.ExpirationDate); err != nil {
			return in, ErrInvalidInput
		}
	}
	return in, nil
}

func drugFrom(id int64, in domain.DrugInput) domain.Drug {
	return domain.Drug{
		ID:             id,
		Name:           in.Name,
		Manufacturer:   in.Manufacturer,
		Price:          in.Price,
		ExpirationDate: in.ExpirationDate,
		StockQuantity:  in.StockQuantity,
	}
}

func (s *DrugService) Create(ctx context.Context, in domain.DrugInput) (*domain.Drug, error) {
	in, err := validateDrug(in)
	if err != nil {
		return nil, err
	}
	d := drugFrom(0, in)
	if err := s.repo.CreateDrug(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DrugService) GetByID(ctx context.Context, id int64) (*domain.Drug, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetDrug(ctx, id)
}

func (s *DrugService) Update(ctx context.Context, id int64, in domain.DrugInput) (*domain.Drug, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	in, err := validateDrug(in)
	if err != nil {
		return nil, err
	}
	d := drugFrom(id, in)
	if err := s.repo.UpdateDrug(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DrugService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.DeleteDrug(ctx, id)
}

func (s *DrugService) List(ctx context.Context) ([]domain.Drug, error) {
	return s.repo.ListDrugs(ctx)
}
