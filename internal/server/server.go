package server

import (
	"diversity-shop/internal/config"
	"diversity-shop/internal/handler"
	appmw "diversity-shop/internal/middleware"
	"diversity-shop/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	shopHandler     *handler.ShopHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.Config,
	catalogService service.CatalogService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
) *Server {
	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(cfg.Session.Secret))))
	e.Use(appmw.JWTIdentity(cfg.JWT.Secret))

	shopHandler := handler.NewShopHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService, cfg.Session.Name)
	checkoutHandler := handler.NewCheckoutHandler(cartService, checkoutService, cfg.Session.Name, cfg.Braintree.TokenizationKey)

	s := &Server{
		echo:            e,
		shopHandler:     shopHandler,
		cartHandler:     cartHandler,
		checkoutHandler: checkoutHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- shop --------
	// The CSRF cookie issued on reads is the anti-forgery token the cart
	// and checkout POSTs must echo back.
	shop := s.echo.Group("/shop", middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup: "header:X-CSRF-Token,form:_csrf",
	}))

	shop.GET("", s.shopHandler.Index)
	shop.GET("/browse", s.shopHandler.Browse)
	shop.GET("/product", s.shopHandler.ProductDetails)

	shop.POST("/cart/add", s.cartHandler.AddToCart)
	shop.GET("/cart", s.cartHandler.Cart)
	shop.POST("/cart/remove", s.cartHandler.RemoveFromCart)

	shop.GET("/checkout", s.checkoutHandler.CheckoutForm, appmw.RequireAuth())
	shop.POST("/checkout", s.checkoutHandler.SubmitCheckout, appmw.RequireAuth())
	shop.GET("/payment", s.checkoutHandler.PaymentForm)
	shop.POST("/payment", s.checkoutHandler.SubmitPayment, appmw.RequireAuth())
	shop.GET("/confirmation", s.checkoutHandler.Confirmation, appmw.RequireAuth())
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
