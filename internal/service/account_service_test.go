package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

func setup(t *testing.T) *Services {
	t.Helper()
	s := NewInMemory()
	s.Accounts.hashCost = bcrypt.MinCost
	return s
}

var validCard = domain.DepositInput{CardNumber: "1234567812345678", ExpiryDate: "09/27", CVC: "321"}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := setup(t)

	u, err := s.Accounts.Register(ctx, domain.NewUser{Username: "ann", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != domain.RoleCustomer {
		t.Fatalf("default role expected CUSTOMER, got %q", u.Role)
	}
	if _, err := s.Accounts.Register(ctx, domain.NewUser{Username: "ann", Password: "x"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if _, err := s.Accounts.Register(ctx, domain.NewUser{Username: "bob", Password: "x", Role: "janitor"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid role, got %v", err)
	}

	res, err := s.Accounts.Login(ctx, domain.LoginInput{Username: "ann", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.Role != "CUSTOMER" {
		t.Fatalf("unexpected login result %+v", res)
	}

	me, err := s.Accounts.Authenticate(ctx, res.Token)
	if err != nil || me.ID != u.ID {
		t.Fatalf("authenticate: %v", err)
	}

	if _, err := s.Accounts.Login(ctx, domain.LoginInput{Username: "ann", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.Accounts.Login(ctx, domain.LoginInput{Username: "nobody", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := s.Accounts.Authenticate(ctx, "bogus"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUpdateMe_RevokesTokens(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	u, _ := s.Accounts.Register(ctx, domain.NewUser{Username: "ann", Password: "secret"})
	res, _ := s.Accounts.Login(ctx, domain.LoginInput{Username: "ann", Password: "secret"})

	if _, err := s.Accounts.UpdateMe(ctx, u.ID, "anna", "newpass"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := s.Accounts.Authenticate(ctx, res.Token); err == nil {
		t.Fatalf("old token should be revoked")
	}
	if _, err := s.Accounts.Login(ctx, domain.LoginInput{Username: "anna", Password: "newpass"}); err != nil {
		t.Fatalf("login with new credentials: %v", err)
	}

	// empty password keeps the current one
	if _, err := s.Accounts.UpdateMe(ctx, u.ID, "anna", ""); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := s.Accounts.Login(ctx, domain.LoginInput{Username: "anna", Password: "newpass"}); err != nil {
		t.Fatalf("password lost on rename: %v", err)
	}
	if _, err := s.Accounts.UpdateMe(ctx, u.ID, "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	u, _ := s.Accounts.Register(ctx, domain.NewUser{Username: "ann", Password: "secret"})

	in := validCard
	in.Amount = 2550
	got, err := s.Accounts.Deposit(ctx, u.ID, in)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if got.Balance != 2550 {
		t.Fatalf("balance expected 2550, got %v", got.Balance)
	}

	cases := []struct {
		name string
		edit func(*domain.DepositInput)
		want error
	}{
		{"short card", func(d *domain.DepositInput) { d.CardNumber = "1234" }, ErrInvalidCard},
		{"letters in card", func(d *domain.DepositInput) { d.CardNumber = "12345678abcd5678" }, ErrInvalidCard},
		{"month 13", func(d *domain.DepositInput) { d.ExpiryDate = "13/27" }, ErrInvalidCard},
		{"month 00", func(d *domain.DepositInput) { d.ExpiryDate = "00/27" }, ErrInvalidCard},
		{"cvc", func(d *domain.DepositInput) { d.CVC = "12" }, ErrInvalidCard},
		{"zero amount", func(d *domain.DepositInput) { d.Amount = 0 }, ErrNonPositiveAmount},
		{"negative amount", func(d *domain.DepositInput) { d.Amount = -100 }, ErrNonPositiveAmount},
	}
	for _, tc := range cases {
		in := validCard
		in.Amount = 100
		tc.edit(&in)
		if _, err := s.Accounts.Deposit(ctx, u.ID, in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	me, _ := s.Accounts.Me(ctx, u.ID)
	if me.Balance != 2550 {
		t.Fatalf("rejected deposits changed balance: %v", me.Balance)
	}
}

func TestListCustomers(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	_, _ = s.Accounts.Register(ctx, domain.NewUser{Username: "admin", Password: "x", Role: domain.RoleAdmin})
	_, _ = s.Accounts.Register(ctx, domain.NewUser{Username: "ann", Password: "x"})
	_, _ = s.Accounts.Register(ctx, domain.NewUser{Username: "bob", Password: "x"})

	list, err := s.Accounts.ListCustomers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Username != "ann" || list[1].Username != "bob" {
		t.Fatalf("unexpected customers %+v", list)
	}
}
