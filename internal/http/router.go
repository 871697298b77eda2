package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mealboard/mealboard/internal/config"
	"github.com/mealboard/mealboard/internal/http/features/devices"
	"github.com/mealboard/mealboard/internal/http/features/fooditems"
	"github.com/mealboard/mealboard/internal/http/features/me"
	"github.com/mealboard/mealboard/internal/http/features/menus"
	"github.com/mealboard/mealboard/internal/http/features/photos"
	"github.com/mealboard/mealboard/internal/http/features/stores"
	"github.com/mealboard/mealboard/internal/http/middleware"
	"github.com/mealboard/mealboard/internal/httputil"
	"github.com/mealboard/mealboard/pkg/access"
	"github.com/mealboard/mealboard/pkg/account"
	"github.com/mealboard/mealboard/pkg/catalog"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger          *slog.Logger
	StoreService    *catalog.StoreService
	MenuService     *catalog.MenuService
	FoodItemService *catalog.FoodItemService
	PhotoService    *catalog.PhotoService
	MemberService   *access.MemberService
	UserService     *account.UserService
	DeviceService   *account.DeviceService
	JWTSecret       []byte
	JWTIssuer       string
	RateLimitConfig config.RateLimitConfig
	Validation      config.ValidationConfig
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.RequestSizeLimit(cfg.Validation.MaxRequestBodySize))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimiters := middleware.CreateRateLimiters(cfg.RateLimitConfig, cfg.Logger)
	auth := middleware.Auth(cfg.JWTSecret, cfg.JWTIssuer)

	storesHandler := stores.NewHandler(cfg.Logger, cfg.StoreService, cfg.MemberService)
	menusHandler := menus.NewHandler(cfg.Logger, cfg.MenuService)
	foodItemsHandler := fooditems.NewHandler(cfg.Logger, cfg.FoodItemService)
	photosHandler := photos.NewHandler(cfg.Logger, cfg.PhotoService)
	devicesHandler := devices.NewHandler(cfg.Logger, cfg.DeviceService)
	meHandler := me.NewHandler(cfg.Logger, cfg.UserService)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(rateLimiters["read"])

		r.Get("/v1/stores", storesHandler.List)
		r.Get("/v1/stores/{storeID}", storesHandler.Get)
		r.Get("/v1/stores/{storeID}/members", storesHandler.ListMembers)
		r.Get("/v1/stores/{storeID}/menus", menusHandler.ListByStore)
		r.Get("/v1/stores/{storeID}/food-items", foodItemsHandler.ListByStore)
		r.Get("/v1/stores/{storeID}/photos", photosHandler.ListByStore)
		r.Get("/v1/menus/{menuID}", menusHandler.Get)
		r.Get("/v1/menus/{menuID}/items", menusHandler.ListItems)
		r.Get("/v1/food-items/{foodItemID}", foodItemsHandler.Get)
		r.Get("/v1/food-items/{foodItemID}/photos", photosHandler.ListByFoodItem)
		r.Get("/v1/devices", devicesHandler.List)
		r.Get("/v1/me", meHandler.GetMe)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(rateLimiters["write"])

		r.Post("/v1/stores", storesHandler.Create)
		r.Patch("/v1/stores/{storeID}", storesHandler.Update)
		r.Delete("/v1/stores/{storeID}", storesHandler.Delete)
		r.Post("/v1/stores/{storeID}/members", storesHandler.InviteMember)
		r.Patch("/v1/stores/{storeID}/members/{userID}/role", storesHandler.ChangeMemberRole)
		r.Delete("/v1/stores/{storeID}/members/{userID}", storesHandler.RemoveMember)
		r.Post("/v1/stores/{storeID}/leave", storesHandler.Leave)

		r.Post("/v1/stores/{storeID}/menus", menusHandler.Create)
		r.Patch("/v1/menus/{menuID}", menusHandler.Update)
		r.Delete("/v1/menus/{menuID}", menusHandler.Delete)
		r.Post("/v1/menus/{menuID}/items", menusHandler.AddItem)
		r.Patch("/v1/menus/{menuID}/items/{itemID}", menusHandler.ReorderItem)
		r.Delete("/v1/menus/{menuID}/items/{itemID}", menusHandler.RemoveItem)

		r.Post("/v1/stores/{storeID}/food-items", foodItemsHandler.Create)
		r.Patch("/v1/food-items/{foodItemID}", foodItemsHandler.Update)
		r.Delete("/v1/food-items/{foodItemID}", foodItemsHandler.Delete)

		r.Post("/v1/photos", photosHandler.Register)
		r.Post("/v1/photos/{photoID}/featured", photosHandler.SetFeatured)
		r.Delete("/v1/photos/{photoID}", photosHandler.Delete)

		r.Post("/v1/devices", devicesHandler.Register)
		r.Post("/v1/devices/revoke", devicesHandler.Revoke)

		r.Post("/v1/me", meHandler.EnsureMe)
		r.Patch("/v1/me", meHandler.UpdateMe)
		r.Delete("/v1/me", meHandler.DeleteMe)
		r.Post("/v1/me/reinstate", meHandler.Reinstate)
	})

	return r
}
