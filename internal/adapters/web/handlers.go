package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/mahabubulhasibshawon/lojamix/internal/application"
	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
)

const ctxUserID = "user_id"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog  *application.CatalogService
	carts    *application.CartService
	checkout *application.CheckoutService
	orders   *application.OrderService
	auth     *application.AuthService
	sessions sessions.Store
	health   map[string]Pinger
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type checkoutForm struct {
	City          string `form:"city"`
	Street        string `form:"street"`
	PostalCode    string `form:"postal_code"`
	PaymentMethod string `form:"payment_method"`
}

var paymentMethods = []string{"Cartão de Crédito", "Pix", "Boleto"}

const missingFieldsFlash = "Preencha cidade, rua, CEP e forma de pagamento."

func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.catalog.EnsureSeeded(ctx); err != nil {
		h.fail(c, err)
		return
	}
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Todos os produtos", "Products": products})
}

func (h *Handler) Category(c *gin.Context) {
	category, products, err := h.catalog.ProductsInCategory(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": category.Name, "Products": products})
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "categorias.html", gin.H{"Categories": categories})
}

func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) Login(c *gin.Context) {
	sess := h.session(c)
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirectWithFlash(c, sess, "/login", "Informe e-mail e senha.")
		return
	}
	user, err := h.auth.Authenticate(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.redirectWithFlash(c, sess, "/login", "E-mail ou senha inválidos.")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	signIn(sess, user)
	h.redirect(c, sess, afterLogin(sess))
}

func (h *Handler) Register(c *gin.Context) {
	sess := h.session(c)
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirectWithFlash(c, sess, "/login", "Preencha nome, e-mail válido e senha para se cadastrar.")
		return
	}
	user, err := h.auth.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		h.redirectWithFlash(c, sess, "/login", "Este e-mail já está cadastrado. Faça login.")
		return
	case errors.Is(err, domain.ErrMissingFields):
		h.redirectWithFlash(c, sess, "/login", "Preencha nome, e-mail válido e senha para se cadastrar.")
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	slog.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID)
	signIn(sess, user)
	h.redirect(c, sess, afterLogin(sess))
}

// afterLogin sends a visitor with a pending cart straight to checkout.
func afterLogin(sess *sessions.Session) string {
	cart, _ := sessionCart{sess}.Load()
	if !cart.IsEmpty() {
		return "/checkout"
	}
	return "/perfil"
}

func (h *Handler) Logout(c *gin.Context) {
	sess := h.session(c)
	signOut(sess)
	h.redirect(c, sess, "/")
}

func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.GetInt64(ctxUserID)
	user, err := h.auth.UserByID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		sess := h.session(c)
		signOut(sess)
		h.redirect(c, sess, "/login")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	orders, err := h.orders.ListOrders(ctx, uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "perfil.html", gin.H{"Profile": user, "Orders": orders})
}

func (h *Handler) Cart(c *gin.Context) {
	summary, err := h.carts.SummarizeCart(c.Request.Context(), sessionCart{h.session(c)})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "carrinho.html", gin.H{"Summary": summary})
}

func (h *Handler) AddToCart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || id <= 0 {
		h.notFound(c)
		return
	}
	sess := h.session(c)
	store := sessionCart{sess}
	cart, err := store.Load()
	if err != nil {
		h.fail(c, err)
		return
	}
	cart.Add(id)
	if err := store.Save(cart); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, sess, "/carrinho")
}

func (h *Handler) ClearCart(c *gin.Context) {
	sess := h.session(c)
	if err := (sessionCart{sess}).Clear(); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, sess, "/carrinho")
}

// checkoutGate applies the checkout preconditions in order: a non-empty
// cart, then a signed-in visitor. It reports false after redirecting.
func (h *Handler) checkoutGate(c *gin.Context, sess *sessions.Session) (int64, bool) {
	cart, err := sessionCart{sess}.Load()
	if err != nil {
		h.fail(c, err)
		return 0, false
	}
	if cart.IsEmpty() {
		c.Redirect(http.StatusFound, "/")
		return 0, false
	}
	uid, ok := sessionUserID(sess)
	if !ok {
		h.redirectWithFlash(c, sess, "/login", "Entre ou cadastre-se para finalizar a compra.")
		return 0, false
	}
	return uid, true
}

func (h *Handler) CheckoutForm(c *gin.Context) {
	sess := h.session(c)
	if _, ok := h.checkoutGate(c, sess); !ok {
		return
	}
	cart := sessionCart{sess}
	summary, err := h.checkout.Pending(c.Request.Context(), cart)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(summary.Items) == 0 {
		if err := cart.Clear(); err != nil {
			h.fail(c, err)
			return
		}
		h.redirect(c, sess, "/")
		return
	}
	h.render(c, http.StatusOK, "checkout.html", gin.H{"Summary": summary, "PaymentMethods": paymentMethods})
}

func (h *Handler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.session(c)
	uid, ok := h.checkoutGate(c, sess)
	if !ok {
		return
	}
	var form checkoutForm
	if err := c.ShouldBind(&form); err != nil {
		h.redirectWithFlash(c, sess, "/checkout", "Não foi possível ler o formulário.")
		return
	}
	if !slices.Contains(paymentMethods, strings.TrimSpace(form.PaymentMethod)) {
		h.redirectWithFlash(c, sess, "/checkout", missingFieldsFlash)
		return
	}

	order, err := h.checkout.Checkout(ctx, uid, sessionCart{sess}, application.CheckoutInput{
		City:          form.City,
		Street:        form.Street,
		PostalCode:    form.PostalCode,
		PaymentMethod: form.PaymentMethod,
	})
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		h.redirect(c, sess, "/")
		return
	case errors.Is(err, domain.ErrMissingFields):
		h.redirectWithFlash(c, sess, "/checkout", missingFieldsFlash)
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	if err := sess.Save(c.Request, c.Writer); err != nil {
		slog.ErrorContext(ctx, "order placed but session cart not cleared", "order_id", order.ID, "error", err)
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/pedido-sucesso/"+order.ID)
}

func (h *Handler) OrderConfirmation(c *gin.Context) {
	order, err := h.orders.FindOrder(c.Request.Context(), c.Param("orderId"), c.GetInt64(ctxUserID))
	if errors.Is(err, domain.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "pedido_sucesso.html", gin.H{"Order": order})
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := gin.H{}, http.StatusOK
	for name, p := range h.health {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	c.JSON(code, status)
}

// requireLogin redirects anonymous visitors to the login page.
func (h *Handler) requireLogin(c *gin.Context) {
	sess := h.session(c)
	uid, ok := sessionUserID(sess)
	if !ok {
		h.redirectWithFlash(c, sess, "/login", "Faça login para continuar.")
		c.Abort()
		return
	}
	c.Set(ctxUserID, uid)
	c.Next()
}

func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	sess := h.session(c)
	if data == nil {
		data = gin.H{}
	}
	cart, _ := sessionCart{sess}.Load()
	data["Username"] = sessionUsername(sess)
	data["CartUnits"] = cart.Units()
	data["Flashes"] = flashes(sess)
	// Reading flashes consumes them.
	if err := sess.Save(c.Request, c.Writer); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(code, name, data)
}

func (h *Handler) redirect(c *gin.Context, sess *sessions.Session, location string) {
	if err := sess.Save(c.Request, c.Writer); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, location)
}

func (h *Handler) redirectWithFlash(c *gin.Context, sess *sessions.Session, location, msg string) {
	sess.AddFlash(msg)
	h.redirect(c, sess, location)
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{"Status": http.StatusNotFound, "Message": "Página não encontrada."})
}

func (h *Handler) fail(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Status": http.StatusInternalServerError, "Message": "Erro interno."})
}
