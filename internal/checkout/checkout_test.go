package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pharmacy/internal/cart"
	"pharmacy/internal/domain"
	"pharmacy/internal/notice"
)

var (
	aspirin     = domain.Drug{ID: 1, Name: "Aspirin", Price: 999, StockQuantity: 5}
	ibuprofen   = domain.Drug{ID: 2, Name: "Ibuprofen", Price: 450, StockQuantity: 10}
	paracetamol = domain.Drug{ID: 3, Name: "Paracetamol", Price: 300, StockQuantity: 2}
)

func filled(t *testing.T, drugs ...domain.Drug) *cart.Cart {
	t.Helper()
	c := cart.New()
	for _, d := range drugs {
		require.NoError(t, c.Add(d))
	}
	return c
}

func TestBuyAll_AllSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	shop := NewMockShop(ctrl)
	c := filled(t, aspirin, ibuprofen)
	require.NoError(t, c.SetQuantity(ibuprofen.ID, 3))

	shop.EXPECT().Buy(gomock.Any(), aspirin.ID, 1).Return(nil)
	shop.EXPECT().Buy(gomock.Any(), ibuprofen.ID, 3).Return(nil)
	shop.EXPECT().Me(gomock.Any()).Return(&domain.User{Username: "ann", Balance: 5000}, nil)
	shop.EXPECT().ListDrugs(gomock.Any()).Return([]domain.Drug{aspirin, ibuprofen}, nil)

	res, err := New(zerolog.Nop()).BuyAll(context.Background(), shop, c)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Len())
	assert.Len(t, res.Succeeded(), 2)
	assert.Empty(t, res.Failed())
	assert.Equal(t, domain.Money(5000), res.User.Balance)
	assert.Len(t, res.Catalog, 2)
	assert.Equal(t, notice.Ok("Purchase successful!"), res.Notice())
}

func TestBuyAll_PartialFailureKeepsFailedLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	shop := NewMockShop(ctrl)
	c := filled(t, aspirin, ibuprofen, paracetamol)

	shop.EXPECT().Buy(gomock.Any(), aspirin.ID, 1).Return(nil)
	shop.EXPECT().Buy(gomock.Any(), ibuprofen.ID, 1).Return(errors.New("Insufficient funds"))
	shop.EXPECT().Buy(gomock.Any(), paracetamol.ID, 1).Return(nil)
	shop.EXPECT().Me(gomock.Any()).Return(&domain.User{Balance: 10}, nil)
	shop.EXPECT().ListDrugs(gomock.Any()).Return([]domain.Drug{aspirin, ibuprofen, paracetamol}, nil)

	res, err := New(zerolog.Nop()).BuyAll(context.Background(), shop, c)
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, ibuprofen.ID, lines[0].Drug.ID)

	require.Len(t, res.Outcomes, 3)
	assert.True(t, res.Outcomes[0].OK())
	assert.False(t, res.Outcomes[1].OK())
	assert.True(t, res.Outcomes[2].OK())

	n := res.Notice()
	assert.Equal(t, notice.Warning, n.Level)
	assert.Equal(t, "Purchased Aspirin x1, Paracetamol x1. Failed: Ibuprofen (Insufficient funds)", n.Message)
}

func TestBuyAll_AllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	shop := NewMockShop(ctrl)
	c := filled(t, aspirin)

	shop.EXPECT().Buy(gomock.Any(), aspirin.ID, 1).Return(errors.New("Not enough stock available"))
	shop.EXPECT().Me(gomock.Any()).Return(nil, errors.New("down"))
	shop.EXPECT().ListDrugs(gomock.Any()).Return(nil, errors.New("down"))

	res, err := New(zerolog.Nop()).BuyAll(context.Background(), shop, c)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Nil(t, res.User)
	assert.Nil(t, res.Catalog)
	assert.Equal(t, notice.Fail("Purchase failed: Not enough stock available"), res.Notice())
}

func TestBuyAll_ReconcilesWithFreshStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	shop := NewMockShop(ctrl)
	c := filled(t, aspirin, ibuprofen)
	require.NoError(t, c.SetQuantity(ibuprofen.ID, 8))

	fresh := ibuprofen
	fresh.StockQuantity = 2
	shop.EXPECT().Buy(gomock.Any(), aspirin.ID, 1).Return(errors.New("Insufficient funds"))
	shop.EXPECT().Buy(gomock.Any(), ibuprofen.ID, 8).Return(errors.New("Not enough stock available"))
	shop.EXPECT().Me(gomock.Any()).Return(&domain.User{}, nil)
	shop.EXPECT().ListDrugs(gomock.Any()).Return([]domain.Drug{fresh}, nil)

	res, err := New(zerolog.Nop()).BuyAll(context.Background(), shop, c)
	require.NoError(t, err)

	require.Len(t, res.Dropped, 1)
	assert.Equal(t, aspirin.ID, res.Dropped[0].Drug.ID)
	q, ok := c.Quantity(ibuprofen.ID)
	require.True(t, ok)
	assert.Equal(t, 2, q)
}

func TestBuyAll_EmptyCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	shop := NewMockShop(ctrl)

	_, err := New(zerolog.Nop()).BuyAll(context.Background(), shop, cart.New())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuyAll_RequestsRunConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	shop := NewMockShop(ctrl)
	c := filled(t, aspirin, ibuprofen, paracetamol)

	// Every purchase blocks until all three have started.
	started := make(chan struct{}, 3)
	release := make(chan struct{})
	shop.EXPECT().Buy(gomock.Any(), gomock.Any(), 1).Times(3).DoAndReturn(func(ctx context.Context, _ int64, _ int) error {
		started <- struct{}{}
		<-release
		return nil
	})
	shop.EXPECT().Me(gomock.Any()).Return(&domain.User{}, nil)
	shop.EXPECT().ListDrugs(gomock.Any()).Return(nil, nil)

	go func() {
		for i := 0; i < 3; i++ {
			<-started
		}
		close(release)
	}()

	res, err := New(zerolog.Nop()).BuyAll(context.Background(), shop, c)
	require.NoError(t, err)
	assert.Len(t, res.Succeeded(), 3)
}
