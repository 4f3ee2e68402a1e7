package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *cart.UseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	adminOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin)}

	// Categories: lectura pública, mutación solo admin
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", append(adminOnly, categoryHandler.Create)...)
	categories.Put("/:id", append(adminOnly, categoryHandler.Update)...)
	categories.Delete("/:id", append(adminOnly, categoryHandler.Delete)...)

	// Products: lectura pública, mutación solo admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", append(adminOnly, productHandler.Create)...)
	products.Put("/:id", append(adminOnly, productHandler.Update)...)
	products.Delete("/:id", append(adminOnly, productHandler.Delete)...)

	// Cart (protegido: cualquier cliente autenticado)
	cartGroup := api.Group("/cart", AuthMiddleware(deps.JWTSecret))
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Post("/", cartHandler.Add)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Put("/:productId", cartHandler.Update)
	cartGroup.Delete("/:productId", cartHandler.Remove)
}
