package domain

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestDescribe(t *testing.T) {
	v := bindingValidator()

	err := v.Struct(RegisterInput{Username: "al", Password: "secret", ConfirmPassword: "other"})
	require.Error(t, err)
	assert.Equal(t, "username must be at least 3 characters; passwords do not match", Describe(err))

	err = v.Struct(DrugInput{Manufacturer: "Bayer", Price: -1, StockQuantity: 2})
	require.Error(t, err)
	assert.Equal(t, "name is required; price cannot be negative", Describe(err))

	err = v.Struct(SupplierInput{Name: "MedSupply", Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, "email is not a valid email address", Describe(err))

	assert.Equal(t, "boom", Describe(errors.New("boom")))
}

func TestDescribe_ValidInputs(t *testing.T) {
	v := bindingValidator()
	assert.NoError(t, v.Struct(RegisterInput{Username: "ann", Password: "secret", ConfirmPassword: "secret"}))
	assert.NoError(t, v.Struct(ProfileInput{Username: "ann"}))
	assert.NoError(t, v.Struct(DrugInput{Name: "A", Manufacturer: "B", ExpirationDate: "2027-01-31"}))
	assert.Error(t, v.Struct(DrugInput{Name: "A", Manufacturer: "B", ExpirationDate: "31/01/2027"}))
}

func TestDescribe_Deposit(t *testing.T) {
	v := bindingValidator()
	valid := DepositInput{CardNumber: "4111111111111111", ExpiryDate: "12/30", CVC: "123", Amount: 100}
	assert.NoError(t, v.Struct(valid))

	cases := []struct {
		edit func(*DepositInput)
		want string
	}{
		{func(d *DepositInput) { d.CardNumber = "1234" }, "card number must be 16 characters long"},
		{func(d *DepositInput) { d.CardNumber = "-234567812345678" }, "card number must contain digits only"},
		{func(d *DepositInput) { d.ExpiryDate = "13/30" }, "expiry date must look like MM/YY"},
		{func(d *DepositInput) { d.ExpiryDate = "00/30" }, "expiry date must look like MM/YY"},
		{func(d *DepositInput) { d.CVC = "12a" }, "CVC must contain digits only"},
		{func(d *DepositInput) { d.Amount = 0 }, "amount must be positive"},
	}
	for _, tc := range cases {
		in := valid
		tc.edit(&in)
		err := v.Struct(in)
		require.Error(t, err, tc.want)
		assert.Equal(t, tc.want, Describe(err))
	}
}
