package api

import (
	"net/http"
	"time"

	"llamachat-backend/internal/config"
	"llamachat-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	SessionHandler      *handlers.SessionHandlers
	ConversationHandler *handlers.ConversationHandlers
	Config              *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second)) // must outlast the upstream completion timeout

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if deps.SessionHandler == nil {
		panic("SessionHandler dependency is nil in router setup")
	}
	r.Post("/api/session", deps.SessionHandler.HandleCreateSession)

	// --- Authenticated Routes (session token required) ---
	r.Route("/api/conversation", func(r chi.Router) {
		r.Use(SessionAuthMiddleware(deps.Config.JWTSecret))

		if deps.ConversationHandler == nil {
			panic("ConversationHandler dependency is nil in router setup")
		}
		r.Post("/", deps.ConversationHandler.HandleCreateConversation)
		r.Get("/{conversationID}/messages", deps.ConversationHandler.HandleGetMessages)
		r.Post("/{conversationID}/message", deps.ConversationHandler.HandlePostMessage)
	})

	// --- Static Frontend ---
	if deps.Config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(deps.Config.StaticDir))
		r.Handle("/*", fileServer)
	}

	return r
}
