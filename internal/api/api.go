package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/fridge-inventory/backend/internal/middleware"
	"github.com/pageza/fridge-inventory/backend/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth     service.IAuthService
	Users    service.IUserService
	Products service.IProductService
	Recipes  service.IRecipeService

	// SuggestionLimiter is optional. Suggestions are unlimited when it is nil.
	SuggestionLimiter *middleware.RateLimiter
}

// SetupAPI registers every resource under /api.
func SetupAPI(router *gin.Engine, svc Services) {
	requireAuth := middleware.AuthMiddleware(svc.Auth)

	var suggestionLimits []gin.HandlerFunc
	if svc.SuggestionLimiter != nil {
		suggestionLimits = append(suggestionLimits, svc.SuggestionLimiter.RateLimitMiddleware())
	}

	group := router.Group("/api")
	{
		NewAuthHandler(svc.Auth).RegisterRoutes(group)
		NewUserHandler(svc.Users).RegisterRoutes(group, requireAuth)
		NewProductHandler(svc.Products).RegisterRoutes(group, requireAuth)
		NewRecipeHandler(svc.Recipes).RegisterRoutes(group, requireAuth, suggestionLimits...)
	}
}
