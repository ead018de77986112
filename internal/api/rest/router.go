package rest

import (
	"log"
	"net/http"
	"strings"

	"notes-service/internal/api/http/middleware"
	"notes-service/internal/config"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter собирает маршруты API и цепочку middleware.
// Возвращаемый handler готов к передаче в http.Server
func NewRouter(h *Handler, cfg *config.ConfigHTTP) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	// Маршруты API
	r.Get("/health", h.Health)
	r.Route("/notes", func(r chi.Router) {
		r.Post("/", h.CreateNote)
		r.Get("/", h.ListNotes)
		r.Get("/events", h.SubscribeToEvents)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetNote)
			r.Put("/", h.UpdateNote)
			r.Delete("/", h.DeleteNote)
		})
	})

	// Применение middleware (в обратном порядке выполнения):
	// 1. CORS (обработка CORS заголовков - самый внешний слой)
	// 2. Logging (логирует все запросы)
	// 3. Rate Limiting (ограничивает количество запросов)
	var handler http.Handler = r
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler = middleware.Logging(handler)
	c := setupCORS(cfg)
	handler = c.Handler(handler)

	log.Printf("CORS enabled for origins: %s", cfg.CORSAllowedOrigins)

	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigHTTP) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	// Убираем пробелы из origins
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}
