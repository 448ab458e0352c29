package service

import (
	"context"
	"errors"
	"testing"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

func setupDS(t *testing.T) *DrugService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewDrugService(store)
}

func TestDrug_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ds := setupDS(t)
	d, err := ds.Create(ctx, domain.DrugInput{Name: " Aspirin ", Manufacturer: "Bayer", Price: 999, StockQuantity: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.ID == 0 {
		t.Fatalf("expected id assigned")
	}
	if d.Name != "Aspirin" {
		t.Fatalf("name not trimmed: %q", d.Name)
	}
	if !d.Available {
		t.Fatalf("expected available")
	}
}

func TestDrug_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ds := setupDS(t)
	if _, err := ds.Create(ctx, domain.DrugInput{Name: "", Price: 1, StockQuantity: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ds.Create(ctx, domain.DrugInput{Name: "N", Price: -1, StockQuantity: 1}); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected negative price error, got %v", err)
	}
	if _, err := ds.Create(ctx, domain.DrugInput{Name: "N", Price: 1, StockQuantity: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ds.Create(ctx, domain.DrugInput{Name: "N", ExpirationDate: "31.12.2026"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected date error, got %v", err)
	}
}

func TestDrug_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ds := setupDS(t)
	d, _ := ds.Create(ctx, domain.DrugInput{Name: "A", Manufacturer: "M", Price: 1000, StockQuantity: 5})

	got, err := ds.GetByID(ctx, d.ID)
	if err != nil || got.ID != d.ID {
		t.Fatalf("get failed: %v", err)
	}

	up, err := ds.Update(ctx, d.ID, domain.DrugInput{Name: "A+", Manufacturer: "M", Price: 1200, StockQuantity: 0})
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Name != "A+" || up.Price != 1200 || up.StockQuantity != 0 || up.Available {
		t.Fatalf("not updated: %+v", up)
	}

	if _, err := ds.Update(ctx, 99, domain.DrugInput{Name: "X"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := ds.Delete(ctx, d.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := ds.GetByID(ctx, d.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
	if err := ds.Delete(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid id")
	}
}
