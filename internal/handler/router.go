package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	catalogreader "github.com/movix/backend/internal/catalog"
	catalogHandler "github.com/movix/backend/internal/handler/catalog"
	"github.com/movix/backend/internal/handler/chatbot"
	widgetHandler "github.com/movix/backend/internal/handler/widget"
	middlewarePkg "github.com/movix/backend/internal/middleware"
	widgetService "github.com/movix/backend/internal/service/widget"
	"github.com/movix/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. responder may be nil when
// the completion credential is absent; the relay then reports
// misconfiguration and widget submits take the fallback path.
func NewRouter(responder chatbot.Responder, widgetSvc *widgetService.Service, reader *catalogreader.Reader) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		chatbot.New(responder).RegisterRoutes(api)
		catalogHandler.New(reader).RegisterRoutes(api)

		wh := widgetHandler.New(widgetSvc)
		wh.RegisterRoutes(api)
		widgetHandler.NewWebSocketHandler(widgetSvc).RegisterWebSocketRoutes(api)
	})

	return r
}
