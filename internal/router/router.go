package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/judgmentfleet/site/api/handler"
	"github.com/judgmentfleet/site/internal/middleware"
)

type Handlers struct {
	Health       *apiHandler.HealthHandler
	Todo         *apiHandler.TodoHandler
	Navigation   *apiHandler.NavigationHandler
	Content      *apiHandler.ContentHandler
	Changes      *apiHandler.ChangesHandler
	Auth         *apiHandler.AuthHandler
	AdminContent *apiHandler.AdminContentHandler
	Admins       *apiHandler.AdminHandler
}

// Guards wrap authenticated routes. Session only needs a valid token; Admin also
// requires the admin behind it to still be active.
type Guards struct {
	Session middleware.Middleware
	Admin   middleware.Middleware
}

func New(handlers Handlers, guards Guards) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Todo list
	r.GET("/api/v1/todos", handlers.Todo.List)
	r.POST("/api/v1/todos", handlers.Todo.Create)
	r.GET("/api/v1/todos/counts", handlers.Todo.Counts)
	r.GET("/api/v1/todos/active-category", handlers.Todo.ActiveCategory)
	r.PUT("/api/v1/todos/active-category", handlers.Todo.SetActiveCategory)
	r.POST("/api/v1/todos/{id}/toggle", handlers.Todo.Toggle)
	r.PUT("/api/v1/todos/{id}/category", handlers.Todo.Move)
	r.DELETE("/api/v1/todos/{id}", handlers.Todo.Delete)

	// Navigation
	r.GET("/api/v1/navigation/anchors", handlers.Navigation.Anchors)
	r.POST("/api/v1/navigation/active-section", handlers.Navigation.ActiveSection)

	// Public content
	r.GET("/api/v1/members", handlers.Content.Members)
	r.GET("/api/v1/games", handlers.Content.Games)
	r.GET("/api/v1/faqs", handlers.Content.FAQs)
	r.GET("/api/v1/footer-resources", handlers.Content.FooterResources)
	r.GET("/api/v1/changes", handlers.Changes.Stream)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", guards.Session(handlers.Auth.Refresh))
	r.POST("/api/v1/auth/logout", guards.Session(handlers.Auth.Logout))

	// Back-office
	admin := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return middleware.Chain(h, guards.Session, guards.Admin)
	}
	ac := handlers.AdminContent

	r.POST("/api/v1/admin/members", admin(ac.CreateMember))
	r.PUT("/api/v1/admin/members/{id}", admin(ac.UpdateMember))
	r.DELETE("/api/v1/admin/members/{id}", admin(ac.DeleteMember))

	r.POST("/api/v1/admin/games", admin(ac.CreateGame))
	r.PUT("/api/v1/admin/games/{id}", admin(ac.UpdateGame))
	r.DELETE("/api/v1/admin/games/{id}", admin(ac.DeleteGame))

	r.GET("/api/v1/admin/faqs", admin(ac.ListFAQs))
	r.POST("/api/v1/admin/faqs", admin(ac.CreateFAQ))
	r.PUT("/api/v1/admin/faqs/{id}", admin(ac.UpdateFAQ))
	r.PATCH("/api/v1/admin/faqs/{id}/active", admin(ac.ToggleFAQ))
	r.DELETE("/api/v1/admin/faqs/{id}", admin(ac.DeleteFAQ))

	r.GET("/api/v1/admin/footer-resources", admin(ac.ListResources))
	r.POST("/api/v1/admin/footer-resources", admin(ac.CreateResource))
	r.PUT("/api/v1/admin/footer-resources/{id}", admin(ac.UpdateResource))
	r.PATCH("/api/v1/admin/footer-resources/{id}/active", admin(ac.ToggleResource))
	r.DELETE("/api/v1/admin/footer-resources/{id}", admin(ac.DeleteResource))

	r.GET("/api/v1/admin/admins", admin(handlers.Admins.List))
	r.POST("/api/v1/admin/admins", admin(handlers.Admins.Create))
	r.PATCH("/api/v1/admin/admins/{id}/active", admin(handlers.Admins.SetActive))
	r.PUT("/api/v1/admin/admins/{id}/password", admin(handlers.Admins.SetPassword))
	r.DELETE("/api/v1/admin/admins/{id}", admin(handlers.Admins.Delete))

	return r
}
