package web

import (
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mahabubulhasibshawon/lojamix/internal/application"
)

//go:embed templates/*.html
var templateFS embed.FS

type Deps struct {
	Catalog  *application.CatalogService
	Carts    *application.CartService
	Checkout *application.CheckoutService
	Orders   *application.OrderService
	Auth     *application.AuthService
	Sessions sessions.Store
	Health   map[string]Pinger
}

// brl formats an amount the way the storefront shows prices, e.g. "R$ 1.299,90".
func brl(d decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return "R$ " + p.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"brl": brl,
		"date": func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	slog.InfoContext(c.Request.Context(), "http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		catalog:  d.Catalog,
		carts:    d.Carts,
		checkout: d.Checkout,
		orders:   d.Orders,
		auth:     d.Auth,
		sessions: d.Sessions,
		health:   d.Health,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger)
	r.SetHTMLTemplate(tmpl)
	r.NoRoute(h.notFound)

	r.GET("/", h.Home)
	r.GET("/categorias", h.Categories)
	r.GET("/categoria/:slug", h.Category)

	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)

	r.GET("/carrinho", h.Cart)
	r.GET("/adicionar/:productId", h.AddToCart)
	r.GET("/limpar_carrinho", h.ClearCart)

	r.GET("/checkout", h.CheckoutForm)
	r.POST("/checkout", h.Checkout)

	authed := r.Group("/", h.requireLogin)
	authed.GET("/perfil", h.Profile)
	authed.GET("/pedido-sucesso/:orderId", h.OrderConfirmation)

	r.GET("/healthz", h.Health)
	return r, nil
}
