package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pharmacy/internal/domain"
	"pharmacy/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCard        = errors.New("invalid card details")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
)

// inputs checks the binding tags of domain inputs, as gin does for requests.
var inputs = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// AccountService отвечает за регистрацию, вход и баланс покупателей
type AccountService struct {
	accounts repository.AccountRepository
	tokens   repository.TokenRepository
	tx       repository.TxManager
	hashCost int
}

func NewAccountService(accounts repository.AccountRepository, tokens repository.TokenRepository, tx repository.TxManager) *AccountService {
	return &AccountService{accounts: accounts, tokens: tokens, tx: tx, hashCost: bcrypt.DefaultCost}
}

func (s *AccountService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Register creates an account. A missing role means CUSTOMER.
func (s *AccountService) Register(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	role := domain.RoleCustomer
	if in.Role != "" {
		r, ok := domain.ParseRole(string(in.Role))
		if !ok {
			return nil, ErrInvalidInput
		}
		role = r
	}
	h, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	a := domain.Account{User: domain.User{Username: username, Role: role}, PasswordHash: h}
	if err := s.accounts.CreateAccount(ctx, &a); err != nil {
		return nil, err
	}
	return &a.User, nil
}

// Login checks the credentials and issues a fresh bearer token.
func (s *AccountService) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	a, err := s.accounts.GetAccountByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token := uuid.NewString()
	if err := s.tokens.SaveToken(ctx, token, a.ID); err != nil {
		return nil, err
	}
	return &domain.LoginResult{Token: token, Role: string(a.Role)}, nil
}

// Authenticate resolves a bearer token to its account.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	id, err := s.tokens.LookupToken(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	a, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return &a.User, nil
}

func (s *AccountService) Me(ctx context.Context, id int64) (*domain.User, error) {
	a, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &a.User, nil
}

// UpdateMe renames the account and, when password is set, replaces it.
// Outstanding tokens are revoked so the caller has to log in again.
func (s *AccountService) UpdateMe(ctx context.Context, id int64, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}
	var h string
	if password != "" {
		var err error
		if h, err = s.hash(password); err != nil {
			return nil, err
		}
	}
	var updated *domain.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.accounts.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		a.Username = username
		if h != "" {
			a.PasswordHash = h
		}
		if err := s.accounts.UpdateAccount(ctx, a); err != nil {
			return err
		}
		if err := s.tokens.RevokeTokens(ctx, id); err != nil {
			return err
		}
		updated = &a.User
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Deposit checks the card details and credits the amount to the balance.
func (s *AccountService) Deposit(ctx context.Context, id int64, in domain.DepositInput) (*domain.User, error) {
	if err := checkDeposit(in); err != nil {
		return nil, err
	}
	var updated *domain.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.accounts.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		a.Balance = a.Balance.Add(in.Amount)
		if err := s.accounts.UpdateAccount(ctx, a); err != nil {
			return err
		}
		updated = &a.User
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AccountService) ListCustomers(ctx context.Context) ([]domain.User, error) {
	accounts, err := s.accounts.ListAccounts(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.User)
	}
	return out, nil
}

// checkDeposit reports bad card details before a bad amount.
func checkDeposit(in domain.DepositInput) error {
	err := inputs.Struct(in)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Field() != "Amount" {
			return ErrInvalidCard
		}
	}
	return ErrNonPositiveAmount
}
