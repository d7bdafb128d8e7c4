package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joaobatista235/know-your-fan/internal/config"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	"github.com/joaobatista235/know-your-fan/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService *authsvc.Service
	FanService  *fanssvc.Service
	Logger      *zap.Logger
	Config      config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	fanHandler := handlers.NewFanHandler(deps.FanService, deps.Logger)
	documentHandler := handlers.NewDocumentHandler(deps.FanService, deps.Logger)
	socialHandler := handlers.NewSocialHandler(deps.FanService, deps.Logger)
	esportsHandler := handlers.NewEsportsHandler(deps.FanService, deps.Logger)
	purchaseHandler := handlers.NewPurchaseHandler(deps.FanService, deps.Logger)
	eventHandler := handlers.NewEventHandler(deps.FanService, deps.Logger)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/v1/fans", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/profile", fanHandler.CreateProfile)
		r.Get("/profile", fanHandler.GetProfile)
		r.Put("/profile", fanHandler.UpdateProfile)
		r.Delete("/profile", fanHandler.DeleteProfile)
		r.Get("/completeness", fanHandler.Completeness)
		r.Get("/analytics", fanHandler.Analytics)
		r.Post("/documents", documentHandler.Upload)
		r.Post("/social-media", socialHandler.Connect)
		r.Post("/social-media/{platform}/sync", socialHandler.Sync)
		r.Post("/esports-profiles", esportsHandler.Add)
		r.Post("/esports-profiles/{platform}/verify", esportsHandler.Verify)
		r.Post("/purchases", purchaseHandler.Add)
		r.Post("/events", eventHandler.Add)
	})
}
