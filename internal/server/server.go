package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"canela-backend/internal/client"
	"canela-backend/internal/handler"
	"canela-backend/internal/middleware"
	"canela-backend/internal/service"
)

type Server struct {
	echo *echo.Echo

	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	productHandler     *handler.ProductHandler
	cartHandler        *handler.CartHandler
	orderHandler       *handler.OrderHandler
	reviewHandler      *handler.ReviewHandler
	applicationHandler *handler.ApplicationHandler
	invoiceHandler     *handler.InvoiceHandler
	recipeHandler      *handler.RecipeHandler
	chatHandler        *handler.ChatHandler
	contactHandler     *handler.ContactHandler
	uploadHandler      *handler.UploadHandler

	authService service.AuthService
}

type Services struct {
	Auth        service.AuthService
	User        service.UserService
	Product     service.ProductService
	Cart        service.CartService
	Order       service.OrderService
	Review      service.ReviewService
	Application service.ApplicationService
	Invoice     service.InvoiceService
	Recipe      service.RecipeService
	Chat        service.ChatService
}

func NewServer(svcs Services, uploader client.Uploader, mailer client.Mailer, operatorAddress string) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:               e,
		authHandler:        handler.NewAuthHandler(svcs.Auth),
		userHandler:        handler.NewUserHandler(svcs.User, svcs.Auth),
		productHandler:     handler.NewProductHandler(svcs.Product),
		cartHandler:        handler.NewCartHandler(svcs.Cart),
		orderHandler:       handler.NewOrderHandler(svcs.Order, uploader),
		reviewHandler:      handler.NewReviewHandler(svcs.Review),
		applicationHandler: handler.NewApplicationHandler(svcs.Application),
		invoiceHandler:     handler.NewInvoiceHandler(svcs.Invoice),
		recipeHandler:      handler.NewRecipeHandler(svcs.Recipe, svcs.User),
		chatHandler:        handler.NewChatHandler(svcs.Chat),
		contactHandler:     handler.NewContactHandler(mailer, operatorAddress),
		uploadHandler:      handler.NewUploadHandler(uploader),
		authService:        svcs.Auth,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	auth := middleware.Auth(s.authService)
	admin := middleware.RequireAdmin()

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- accounts --------
	api.POST("/login", s.authHandler.Login)
	users := api.Group("/users")
	users.POST("", s.userHandler.Create)
	users.POST("/recover-password", s.userHandler.RecoverPassword)
	users.POST("/reset-password", s.userHandler.ResetPassword)
	users.GET("/:id", s.userHandler.Get, auth)
	users.PUT("/:id", s.userHandler.Update, auth)
	users.DELETE("/:id", s.userHandler.Delete, auth)

	// -------- catalog --------
	products := api.Group("/products")
	products.GET("", s.productHandler.List)
	products.GET("/:id", s.productHandler.Get)
	products.POST("", s.productHandler.Create, auth, admin)
	products.PUT("/:id", s.productHandler.Update, auth, admin)
	products.DELETE("/:id", s.productHandler.Delete, auth, admin)

	// -------- cart --------
	cart := api.Group("/cart", auth)
	cart.POST("", s.cartHandler.AddItem)
	cart.GET("", s.cartHandler.GetItems)
	cart.DELETE("/:id", s.cartHandler.DeleteItem)

	// -------- orders --------
	orders := api.Group("/orders")
	// Gateway callback, authenticated by payload contents only.
	orders.POST("/payment-notify", s.orderHandler.PaymentNotify)
	orders.POST("", s.orderHandler.Place, auth)
	orders.GET("", s.orderHandler.List, auth)
	orders.GET("/:id", s.orderHandler.Get, auth)
	orders.PUT("/:id", s.orderHandler.Update, auth, admin)
	orders.DELETE("/:id", s.orderHandler.Delete, auth, admin)

	// -------- invoices --------
	invoices := api.Group("/invoice", auth)
	invoices.POST("", s.invoiceHandler.Create)
	invoices.GET("", s.invoiceHandler.List)
	invoices.GET("/:id", s.invoiceHandler.Get)
	invoices.PUT("/:id", s.invoiceHandler.Update)
	invoices.DELETE("/:id", s.invoiceHandler.Delete)

	// -------- reviews --------
	reviews := api.Group("/reviews")
	reviews.GET("", s.reviewHandler.List)
	reviews.GET("/summary", s.reviewHandler.Summary)
	reviews.GET("/:id", s.reviewHandler.Get)
	reviews.POST("", s.reviewHandler.Create, auth)
	reviews.PUT("/:id", s.reviewHandler.Update, auth)
	reviews.DELETE("/:id", s.reviewHandler.Delete, auth)
	reviews.POST("/:id/replies", s.reviewHandler.AddReply, auth)

	// -------- recipes --------
	recipes := api.Group("/recipes")
	recipes.GET("", s.recipeHandler.List)
	recipes.GET("/:id", s.recipeHandler.Get)
	recipes.POST("", s.recipeHandler.Create, auth, admin)
	recipes.PUT("/:id", s.recipeHandler.Update, auth, admin)
	recipes.DELETE("/:id", s.recipeHandler.Delete, auth, admin)

	// -------- recruitment --------
	recruitment := api.Group("/recruitment")
	recruitment.POST("/apply", s.applicationHandler.Submit)
	recruitment.GET("/applications", s.applicationHandler.List, auth, admin)
	recruitment.GET("/applications/:id", s.applicationHandler.Get, auth, admin)
	recruitment.PATCH("/applications/:id/status", s.applicationHandler.UpdateStatus, auth, admin)
	recruitment.DELETE("/applications/:id", s.applicationHandler.Delete, auth, admin)

	// -------- chatbot --------
	chat := api.Group("/chat")
	chat.POST("", s.chatHandler.Message)
	chat.GET("/health", s.chatHandler.Health)

	// -------- misc --------
	api.POST("/contact", s.contactHandler.Send)
	s.echo.POST("/uploads", s.uploadHandler.Upload, auth)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
