package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/pickles-ecom/internal/apperr"
	"github.com/MikeMC777/pickles-ecom/internal/catalog"
	"github.com/MikeMC777/pickles-ecom/internal/checkout"
	"github.com/MikeMC777/pickles-ecom/internal/health"
	"github.com/MikeMC777/pickles-ecom/internal/httpx"
	"github.com/MikeMC777/pickles-ecom/internal/session"
	"github.com/MikeMC777/pickles-ecom/internal/user"
)

const maxQuantity = 99

// render adds the header fields every page needs.
func render(c *gin.Context, status int, name string, data gin.H) {
	s := session.Get(c)
	data["Username"] = s.Data.Username
	data["CartCount"] = s.Data.Cart.Count()
	c.HTML(status, name, data)
}

func pageHandler(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, name, gin.H{"Title": title})
	}
}

func indexHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "index.html", gin.H{"Title": "Shop", "Categories": cat.Categories()})
	}
}

func categoryHandler(cat *catalog.Catalog, slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := cat.Category(slug)
		if !ok {
			httpx.NotFound(c)
			return
		}
		render(c, http.StatusOK, "category.html", gin.H{"Title": category.Title, "Category": category})
	}
}

func cartPage(c *gin.Context, status int, errMsg string) {
	s := session.Get(c)
	render(c, status, "cart.html", gin.H{
		"Title": "Cart",
		"Cart":  &s.Data.Cart,
		"Total": s.Data.Cart.Total(),
		"Error": errMsg,
	})
}

func viewCartHandler(c *gin.Context) {
	cartPage(c, http.StatusOK, "")
}

type addToCartForm struct {
	Product  string `form:"product"`
	Quantity string `form:"quantity"`
}

// addToCartHandler godoc
// @Summary  Add to cart
// @Tags     cart
// @Accept   x-www-form-urlencoded
// @Param    product   formData string  true  "Product name"
// @Param    quantity  formData integer false "Quantity (1-99)" default(1)
// @Success  302
// @Failure  400
// @Router   /add_to_cart [post]
func addToCartHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f addToCartForm
		if err := c.ShouldBind(&f); err != nil {
			cartPage(c, http.StatusBadRequest, "Invalid request.")
			return
		}
		qty := 1
		if q := strings.TrimSpace(f.Quantity); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n < 1 || n > maxQuantity {
				cartPage(c, http.StatusBadRequest, "Quantity must be between 1 and 99.")
				return
			}
			qty = n
		}
		p, err := cat.Lookup(strings.TrimSpace(f.Product))
		if err != nil {
			cartPage(c, http.StatusBadRequest, "Unknown product.")
			return
		}

		s := session.Get(c)
		if err := s.Data.Cart.Add(p.Name, p.Price, qty); err != nil {
			cartPage(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.Save(c); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/cart.html")
	}
}

// clearCartHandler godoc
// @Summary  Empty the session cart
// @Tags     cart
// @Success  302
// @Router   /clear_cart [post]
func clearCartHandler(c *gin.Context) {
	s := session.Get(c)
	s.Data.Cart.Clear()
	if err := s.Save(c); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/cart.html")
}

type checkoutForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
}

func checkoutPage(c *gin.Context, status int, f checkoutForm, errMsg string) {
	s := session.Get(c)
	render(c, status, "checkout.html", gin.H{
		"Title": "Checkout",
		"Cart":  &s.Data.Cart,
		"Total": s.Data.Cart.Total(),
		"Form":  f,
		"Error": errMsg,
	})
}

func checkoutFormHandler(c *gin.Context) {
	if session.Get(c).Data.Cart.Empty() {
		c.Redirect(http.StatusFound, "/cart.html")
		return
	}
	checkoutPage(c, http.StatusOK, checkoutForm{}, "")
}

// checkoutHandler godoc
// @Summary  Checkout
// @Tags     checkout
// @Accept   x-www-form-urlencoded
// @Param    name     formData string true "Buyer name"
// @Param    email    formData string true "Buyer email"
// @Param    address  formData string true "Delivery address"
// @Success  200
// @Success  302
// @Failure  400
// @Router   /checkout.html [post]
func checkoutHandler(svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f checkoutForm
		if err := c.ShouldBind(&f); err != nil {
			checkoutPage(c, http.StatusBadRequest, f, "Invalid request.")
			return
		}

		s := session.Get(c)
		res, err := svc.Checkout(c.Request.Context(), &s.Data.Cart, checkout.Buyer{
			Name:    f.Name,
			Email:   f.Email,
			Address: f.Address,
		})
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.Redirect(http.StatusFound, "/cart.html")
			return
		case apperr.IsValidation(err):
			checkoutPage(c, http.StatusBadRequest, f, err.Error())
			return
		case err != nil:
			httpx.Fail(c, err)
			return
		}

		if err := s.Save(c); err != nil {
			logger.Error("failed to clear cart after checkout",
				zap.String("order_id", res.Order.ID), zap.Error(err))
		}
		render(c, http.StatusOK, "order_success.html", gin.H{
			"Title":   "Order placed",
			"OrderID": res.Order.ID,
			"Total":   res.Order.Total,
		})
	}
}

type signupForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func signupPage(c *gin.Context, status int, f signupForm, errMsg string) {
	f.Password = ""
	render(c, status, "signup.html", gin.H{"Title": "Sign up", "Form": f, "Error": errMsg})
}

// signupHandler godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   x-www-form-urlencoded
// @Param    name      formData string true "Username"
// @Param    email     formData string true "Email"
// @Param    password  formData string true "Password"
// @Success  302
// @Failure  400
// @Failure  409
// @Router   /signup.html [post]
func signupHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f signupForm
		if err := c.ShouldBind(&f); err != nil {
			signupPage(c, http.StatusBadRequest, f, "Invalid request.")
			return
		}
		err := users.Signup(c.Request.Context(), f.Name, f.Email, f.Password)
		switch {
		case err == nil:
			c.Redirect(http.StatusFound, "/login.html")
		case errors.Is(err, user.ErrDuplicateUser):
			signupPage(c, http.StatusConflict, f, "Username already exists.")
		case apperr.IsValidation(err):
			signupPage(c, http.StatusBadRequest, f, err.Error())
		default:
			httpx.Fail(c, err)
		}
	}
}

type loginForm struct {
	Name     string `form:"name"`
	Password string `form:"password"`
}

// loginHandler godoc
// @Summary  Log in
// @Tags     auth
// @Accept   x-www-form-urlencoded
// @Param    name      formData string true "Username"
// @Param    password  formData string true "Password"
// @Success  302
// @Failure  401
// @Router   /login.html [post]
func loginHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f loginForm
		_ = c.ShouldBind(&f)

		username, err := users.Login(c.Request.Context(), f.Name, f.Password)
		if errors.Is(err, user.ErrInvalidCredentials) {
			render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Title": "Log in",
				"Form":  loginForm{Name: f.Name},
				"Error": "Invalid credentials",
			})
			return
		}
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		s := session.Get(c)
		s.Data.Username = username
		if err := s.Renew(c); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/")
	}
}

type contactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

// contactHandler godoc
// @Summary  Send a contact message
// @Tags     pages
// @Accept   x-www-form-urlencoded
// @Param    name     formData string true "Name"
// @Param    email    formData string true "Email"
// @Param    message  formData string true "Message"
// @Success  200
// @Router   /contact.html [post]
func contactHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f contactForm
		_ = c.ShouldBind(&f)
		if strings.TrimSpace(f.Message) == "" {
			render(c, http.StatusBadRequest, "contact.html", gin.H{"Title": "Contact", "Error": "Please write a message."})
			return
		}
		logger.Info("contact message",
			zap.String("name", f.Name),
			zap.String("email", f.Email),
			zap.String("message", f.Message))
		render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact", "Success": true})
	}
}

// healthHandler godoc
// @Summary  Store reachability
// @Tags     ops
// @Produce  json
// @Success  200
// @Failure  503
// @Router   /healthz [get]
func healthHandler(mon *health.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		mon.Probe(c.Request.Context())
		ok, detail := mon.Healthy()
		status := gin.H{"status": "healthy", "checks": detail}
		if !ok {
			status["status"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
