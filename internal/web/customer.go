package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"pharmacy/internal/apiclient"
	"pharmacy/internal/cart"
	"pharmacy/internal/checkout"
	"pharmacy/internal/domain"
	"pharmacy/internal/notice"
)

const homePath = "/user/home"

type homeData struct {
	User   *domain.User
	Drugs  []domain.Drug
	Lines  []cart.Line
	Total  domain.Money
	InCart map[int64]bool
}

// userHome shows the catalog, the cart and the balance. The cart is
// reconciled with the catalog just fetched, so quantities never exceed the
// stock on screen.
func (s *Server) userHome(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	token := current(c).Token
	data := homeData{User: &domain.User{}, InCart: map[int64]bool{}}
	api := s.client(c)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := api.Me(gctx)
		if err == nil {
			data.User = u
		}
		return err
	})
	g.Go(func() error {
		drugs, err := api.ListDrugs(gctx)
		if err == nil {
			data.Drugs = drugs
		}
		return err
	})
	if err := g.Wait(); err != nil {
		if lines, ok := s.carts.Snapshot(token); ok {
			data.setLines(lines)
		}
		s.failedPage(c, "user_home.gohtml", "Pharmacy", data, err)
		return
	}

	lines, dropped, ok := s.carts.Reconcile(token, data.Drugs)
	if ok {
		data.setLines(lines)
	}
	p := s.page(c, "Pharmacy", data)
	if len(dropped) > 0 {
		p.Notice = withDropped(p.Notice, dropped)
	}
	s.render(c, http.StatusOK, "user_home.gohtml", p)
}

func (d *homeData) setLines(lines []cart.Line) {
	d.Lines = lines
	d.Total = cart.Sum(lines)
	for _, l := range lines {
		d.InCart[l.Drug.ID] = true
	}
}

// withDropped adds the names of lines removed for lack of stock to n.
func withDropped(n notice.Notice, dropped []cart.Line) notice.Notice {
	names := make([]string, 0, len(dropped))
	for _, l := range dropped {
		names = append(names, l.Drug.Name)
	}
	msg := fmt.Sprintf("Removed from cart (no longer in stock): %s.", strings.Join(names, ", "))
	if n.Empty() {
		return notice.Warn(msg)
	}
	n.Message += " " + msg
	if n.Level == notice.Success {
		n.Level = notice.Warning
	}
	return n
}

type cartForm struct {
	DrugID   int64 `form:"drugId" binding:"required"`
	Quantity int   `form:"quantity"`
}

func (s *Server) addToCart(c *gin.Context) {
	var f cartForm
	if err := c.ShouldBind(&f); err != nil {
		s.redirect(c, homePath, notice.Fail("Choose a medication to add."))
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()

	d, err := s.client(c).GetDrug(ctx, f.DrugID)
	if err != nil {
		s.failed(c, homePath, "Could not add to cart: ", err)
		return
	}
	err = s.carts.Update(current(c).Token, func(ct *cart.Cart) error { return ct.Add(*d) })
	if errors.Is(err, cart.ErrOutOfStock) {
		s.redirect(c, homePath, notice.Warn(d.Name+" is out of stock."))
		return
	}
	if err != nil {
		s.redirect(c, homePath, notice.Fail(err.Error()))
		return
	}
	s.redirect(c, homePath, notice.Ok(d.Name+" added to cart."))
}

func (s *Server) removeFromCart(c *gin.Context) {
	var f cartForm
	if err := c.ShouldBind(&f); err != nil {
		s.redirect(c, homePath, notice.Notice{})
		return
	}
	_ = s.carts.Update(current(c).Token, func(ct *cart.Cart) error {
		ct.Remove(f.DrugID)
		return nil
	})
	s.redirect(c, homePath, notice.Notice{})
}

// setQuantity stores the requested quantity clamped to the stock last seen.
func (s *Server) setQuantity(c *gin.Context) {
	var f cartForm
	if err := c.ShouldBind(&f); err != nil {
		s.redirect(c, homePath, notice.Fail("Quantity must be a number."))
		return
	}
	err := s.carts.Update(current(c).Token, func(ct *cart.Cart) error {
		return ct.SetQuantity(f.DrugID, f.Quantity)
	})
	if err != nil {
		s.redirect(c, homePath, notice.Fail(err.Error()))
		return
	}
	s.redirect(c, homePath, notice.Notice{})
}

// buy checks out the whole cart and reports how every line settled.
func (s *Server) buy(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	var res *checkout.Result
	api := s.client(c)
	err := s.carts.Update(current(c).Token, func(ct *cart.Cart) error {
		var err error
		res, err = s.checkout.BuyAll(ctx, api, ct)
		return err
	})
	if errors.Is(err, checkout.ErrEmptyCart) {
		s.redirect(c, homePath, notice.Warn("Your cart is empty."))
		return
	}
	if err != nil {
		s.failed(c, homePath, "Purchase failed: ", err)
		return
	}
	for _, o := range res.Failed() {
		if apiclient.IsUnauthorized(o.Err) {
			s.failed(c, homePath, "", o.Err)
			return
		}
	}

	n := res.Notice()
	if len(res.Dropped) > 0 {
		n = withDropped(n, res.Dropped)
	}
	s.redirect(c, homePath, n)
}

func (s *Server) deposit(c *gin.Context) {
	var in domain.DepositInput
	if err := c.ShouldBind(&in); err != nil {
		s.redirect(c, homePath, notice.Fail("Deposit failed: "+domain.Describe(err)))
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()

	if err := s.client(c).Deposit(ctx, in); err != nil {
		s.failed(c, homePath, "Deposit failed: ", err)
		return
	}
	s.redirect(c, homePath, notice.Ok("Deposit successful!"))
}
