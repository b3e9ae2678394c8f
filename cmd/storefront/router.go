package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/MikeMC777/pickles-ecom/internal/catalog"
	"github.com/MikeMC777/pickles-ecom/internal/checkout"
	_ "github.com/MikeMC777/pickles-ecom/internal/docs"
	"github.com/MikeMC777/pickles-ecom/internal/health"
	"github.com/MikeMC777/pickles-ecom/internal/httpx"
	"github.com/MikeMC777/pickles-ecom/internal/session"
	"github.com/MikeMC777/pickles-ecom/internal/user"
)

type deps struct {
	Catalog  *catalog.Catalog
	Users    *user.Service
	Checkout *checkout.Service
	Sessions session.Store
	Session  session.Options
	Health   *health.Monitor
	Logger   *zap.Logger
}

func newRouter(d deps) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(httpx.RequestID(), httpx.Logger(d.Logger), httpx.Recovery(d.Logger), httpx.ErrorPages())

	// no session for ops routes
	r.GET("/healthz", healthHandler(d.Health))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Use(session.Middleware(d.Sessions, d.Session))

	r.GET("/", pageHandler("home.html", "Home"))
	r.GET("/index.html", indexHandler(d.Catalog))
	r.GET("/about.html", pageHandler("about.html", "About"))

	r.GET("/veg-pickles.html", categoryHandler(d.Catalog, "veg-pickles"))
	r.GET("/nonveg-pickles.html", categoryHandler(d.Catalog, "nonveg-pickles"))
	r.GET("/snacks.html", categoryHandler(d.Catalog, "snacks"))

	r.GET("/cart.html", viewCartHandler)
	r.POST("/add_to_cart", addToCartHandler(d.Catalog))
	r.POST("/clear_cart", clearCartHandler)

	r.GET("/checkout.html", checkoutFormHandler)
	r.POST("/checkout.html", checkoutHandler(d.Checkout, d.Logger))

	r.GET("/signup.html", pageHandler("signup.html", "Sign up"))
	r.POST("/signup.html", signupHandler(d.Users))
	r.GET("/login.html", pageHandler("login.html", "Log in"))
	r.POST("/login.html", loginHandler(d.Users))

	r.GET("/contact.html", pageHandler("contact.html", "Contact"))
	r.POST("/contact.html", contactHandler(d.Logger))

	r.NoRoute(httpx.NotFound)
	return r, nil
}
