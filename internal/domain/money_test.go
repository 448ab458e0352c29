package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"9.99", 999},
		{"49.95", 4995},
		{"0", 0},
		{"12", 1200},
		{"12.5", 1250},
		{".5", 50},
		{"5.", 500},
		{"9.995", 1000},
		{"9.994", 999},
		{"-3.25", -325},
		{"1e2", 10000},
		{" 7.10 ", 710},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	got, err := ParseMoney("92233720368547757.99")
	require.NoError(t, err)
	assert.Equal(t, Money(9223372036854775799), got)

	for _, bad := range []string{"", ".", "abc", "1.2.3", "1,5", "--1",
		"184467440737095517", "92233720368547758.07", "-92233720368547758", "1e18", "99999999999999999999"} {
		_, err := ParseMoney(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "49.95", Money(4995).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-1.05", Money(-105).String())
	assert.Equal(t, "$1,234,567.80", Money(123456780).Display())
	assert.Equal(t, "-$0.99", Money(-99).Display())
}

func TestMoneyJSON(t *testing.T) {
	var d Drug
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Aspirin","price":9.99,"stockQuantity":5}`), &d))
	assert.Equal(t, Money(999), d.Price)
	assert.Equal(t, Money(4995), d.Price.Mul(d.StockQuantity))

	out, err := json.Marshal(DrugInput{Name: "A", Manufacturer: "B", Price: 1050, StockQuantity: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A","manufacturer":"B","price":10.50,"stock_quantity":3}`, string(out))

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"balance":"12.30"}`), &u))
	assert.Equal(t, Money(1230), u.Balance)
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"ADMIN": RoleAdmin, "admin": RoleAdmin, "Customer": RoleCustomer, " CUSTOMER ": RoleCustomer} {
		got, ok := ParseRole(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseRole("pharmacist")
	assert.False(t, ok)
}
