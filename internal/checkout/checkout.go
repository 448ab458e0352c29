// Package checkout buys every line of a cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pharmacy/internal/cart"
	"pharmacy/internal/domain"
	"pharmacy/internal/notice"
)

var ErrEmptyCart = errors.New("cart is empty")

//go:generate mockgen -source=checkout.go -destination=mock_shop_test.go -package=checkout

// Shop is the slice of the backend checkout needs, already bound to the
// customer's token.
type Shop interface {
	Buy(ctx context.Context, drugID int64, quantity int) error
	Me(ctx context.Context) (*domain.User, error)
	ListDrugs(ctx context.Context) ([]domain.Drug, error)
}

// Outcome is how one line settled.
type Outcome struct {
	Line cart.Line
	Err  error
}

func (o Outcome) OK() bool { return o.Err == nil }

type Result struct {
	// Outcomes follow cart order.
	Outcomes []Outcome
	// User and Catalog are re-fetched after the purchases settle; nil when the
	// refresh failed.
	User    *domain.User
	Catalog []domain.Drug
	// Dropped lists lines removed because the fresh catalog no longer stocks them.
	Dropped []cart.Line
}

func (r *Result) Succeeded() []Outcome { return r.filter(true) }
func (r *Result) Failed() []Outcome    { return r.filter(false) }

func (r *Result) filter(ok bool) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.OK() == ok {
			out = append(out, o)
		}
	}
	return out
}

// Notice summarises the result in one message.
func (r *Result) Notice() notice.Notice {
	ok, failed := r.Succeeded(), r.Failed()
	switch {
	case len(failed) == 0:
		return notice.Ok("Purchase successful!")
	case len(ok) == 0:
		return notice.Fail("Purchase failed: " + failed[0].Err.Error())
	}
	var b strings.Builder
	b.WriteString("Purchased ")
	for i, o := range ok {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s x%d", o.Line.Drug.Name, o.Line.Quantity)
	}
	b.WriteString(". Failed: ")
	for i, o := range failed {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (%s)", o.Line.Drug.Name, o.Err)
	}
	return notice.Warn(b.String())
}

type Service struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// BuyAll sends one purchase per line concurrently and waits for all of them.
// Purchased lines leave the cart; failed ones stay for another attempt. The
// caller must hold exclusive access to c.
func (s *Service) BuyAll(ctx context.Context, shop Shop, c *cart.Cart) (*Result, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	res := &Result{Outcomes: make([]Outcome, len(lines))}
	var g errgroup.Group
	for i, l := range lines {
		g.Go(func() error {
			err := shop.Buy(ctx, l.Drug.ID, l.Quantity)
			res.Outcomes[i] = Outcome{Line: l, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range res.Outcomes {
		if o.OK() {
			c.Remove(o.Line.Drug.ID)
			continue
		}
		s.logger.Warn().
			Int64("drug_id", o.Line.Drug.ID).
			Int("quantity", o.Line.Quantity).
			Err(o.Err).
			Msg("checkout: line failed")
	}

	if u, err := shop.Me(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("checkout: refresh balance")
	} else {
		res.User = u
	}
	if catalog, err := shop.ListDrugs(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("checkout: refresh catalog")
	} else {
		res.Catalog = catalog
		res.Dropped = c.Reconcile(catalog)
	}

	s.logger.Info().
		Int("lines", len(lines)).
		Int("purchased", len(res.Succeeded())).
		Int("failed", len(res.Failed())).
		Msg("checkout settled")
	return res, nil
}
