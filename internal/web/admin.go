package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pharmacy/internal/apiclient"
	"pharmacy/internal/domain"
	"pharmacy/internal/notice"
)

func (s *Server) adminHome(c *gin.Context) {
	s.render(c, http.StatusOK, "admin_home.gohtml", s.page(c, "Administration", nil))
}

type listData[R any] struct {
	Items []R
}

type formData[In any] struct {
	// ID is zero while creating.
	ID     int64
	Input  In
	Action string
	Back   string
}

// panel is an editable admin table: list, create and edit dialogs, and a
// save action that creates without an id and updates with one.
type panel[In, R any] struct {
	s        *Server
	path     string
	title    string
	noun     string
	listTmpl string
	formTmpl string
	list     func(*apiclient.Client, context.Context) ([]R, error)
	get      func(*apiclient.Client, context.Context, int64) (*R, error)
	create   func(*apiclient.Client, context.Context, In) error
	update   func(*apiclient.Client, context.Context, int64, In) error
	input    func(R) In
}

func drugPanel(s *Server) *panel[domain.DrugInput, domain.Drug] {
	return &panel[domain.DrugInput, domain.Drug]{
		s: s, path: "/drugs", title: "Drugs", noun: "Drug",
		listTmpl: "drugs.gohtml", formTmpl: "drug_form.gohtml",
		list:   (*apiclient.Client).ListDrugs,
		get:    (*apiclient.Client).GetDrug,
		create: (*apiclient.Client).CreateDrug,
		update: (*apiclient.Client).UpdateDrug,
		input:  domain.Drug.Input,
	}
}

func employeePanel(s *Server) *panel[domain.EmployeeInput, domain.Employee] {
	return &panel[domain.EmployeeInput, domain.Employee]{
		s: s, path: "/employees", title: "Employees", noun: "Employee",
		listTmpl: "employees.gohtml", formTmpl: "employee_form.gohtml",
		list:   (*apiclient.Client).ListEmployees,
		get:    (*apiclient.Client).GetEmployee,
		create: (*apiclient.Client).CreateEmployee,
		update: (*apiclient.Client).UpdateEmployee,
		input:  domain.Employee.Input,
	}
}

func supplierPanel(s *Server) *panel[domain.SupplierInput, domain.Supplier] {
	return &panel[domain.SupplierInput, domain.Supplier]{
		s: s, path: "/suppliers", title: "Suppliers", noun: "Supplier",
		listTmpl: "suppliers.gohtml", formTmpl: "supplier_form.gohtml",
		list:   (*apiclient.Client).ListSuppliers,
		get:    (*apiclient.Client).GetSupplier,
		create: (*apiclient.Client).CreateSupplier,
		update: (*apiclient.Client).UpdateSupplier,
		input:  domain.Supplier.Input,
	}
}

// mount registers the panel's routes on the /admin group.
func (p *panel[In, R]) mount(g *gin.RouterGroup) {
	g.GET(p.path, p.index)
	g.GET(p.path+"/new", p.newForm)
	g.GET(p.path+"/:id/edit", p.editForm)
	g.POST(p.path, p.save)
}

func (p *panel[In, R]) listPath() string { return "/admin" + p.path }

func (p *panel[In, R]) index(c *gin.Context) {
	ctx, cancel := p.s.ctx(c)
	defer cancel()

	items, err := p.list(p.s.client(c), ctx)
	if err != nil {
		p.s.failedPage(c, p.listTmpl, p.title, listData[R]{}, err)
		return
	}
	p.s.render(c, http.StatusOK, p.listTmpl, p.s.page(c, p.title, listData[R]{Items: items}))
}

func (p *panel[In, R]) form(c *gin.Context, status int, n notice.Notice, id int64, in In) {
	title := "New " + p.noun
	if id != 0 {
		title = "Edit " + p.noun
	}
	pg := p.s.page(c, title, formData[In]{ID: id, Input: in, Action: p.listPath(), Back: p.listPath()})
	if !n.Empty() {
		pg.Notice = n
	}
	p.s.render(c, status, p.formTmpl, pg)
}

func (p *panel[In, R]) newForm(c *gin.Context) {
	var zero In
	p.form(c, http.StatusOK, notice.Notice{}, 0, zero)
}

func (p *panel[In, R]) editForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		p.s.redirect(c, p.listPath(), notice.Fail("Unknown "+p.noun+" id."))
		return
	}
	ctx, cancel := p.s.ctx(c)
	defer cancel()

	rec, err := p.get(p.s.client(c), ctx, id)
	if err != nil {
		p.s.failed(c, p.listPath(), "Could not load "+p.noun+": ", err)
		return
	}
	p.form(c, http.StatusOK, notice.Notice{}, id, p.input(*rec))
}

// save creates the record when the form has no id and updates it otherwise.
// Invalid input re-renders the dialog with what was entered.
func (p *panel[In, R]) save(c *gin.Context) {
	var id int64
	if raw := c.PostForm("id"); raw != "" {
		var err error
		if id, err = strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
			p.s.redirect(c, p.listPath(), notice.Fail("Unknown "+p.noun+" id."))
			return
		}
	}
	var in In
	if err := c.ShouldBind(&in); err != nil {
		p.form(c, http.StatusBadRequest, notice.Fail(domain.Describe(err)), id, in)
		return
	}
	ctx, cancel := p.s.ctx(c)
	defer cancel()

	api := p.s.client(c)
	var err error
	verb := "created"
	if id == 0 {
		err = p.create(api, ctx, in)
	} else {
		verb = "updated"
		err = p.update(api, ctx, id, in)
	}
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			p.s.failed(c, p.listPath(), "", err)
			return
		}
		p.s.logger.Warn().Err(err).Str("panel", p.title).Int64("id", id).Msg("save failed")
		p.form(c, mapErrorToStatus(err), notice.Fail("Save failed: "+message(err)), id, in)
		return
	}
	p.s.redirect(c, p.listPath(), notice.Ok(p.noun+" "+verb+"."))
}

func (s *Server) deleteDrug(c *gin.Context) {
	const back = "/admin/drugs"
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.redirect(c, back, notice.Fail("Unknown Drug id."))
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()

	if err := s.client(c).DeleteDrug(ctx, id); err != nil {
		s.failed(c, back, "Delete failed: ", err)
		return
	}
	s.redirect(c, back, notice.Ok("Drug deleted."))
}

func (s *Server) customers(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	list, err := s.client(c).ListCustomers(ctx)
	if err != nil {
		s.failedPage(c, "customers.gohtml", "Customers", listData[domain.User]{}, err)
		return
	}
	s.render(c, http.StatusOK, "customers.gohtml", s.page(c, "Customers", listData[domain.User]{Items: list}))
}

func (s *Server) sales(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	list, err := s.client(c).ListSales(ctx)
	if err != nil {
		s.failedPage(c, "sales.gohtml", "Sales", listData[domain.Sale]{}, err)
		return
	}
	s.render(c, http.StatusOK, "sales.gohtml", s.page(c, "Sales", listData[domain.Sale]{Items: list}))
}
