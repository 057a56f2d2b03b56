package http

import (
	"net/http"

	"eventeditor/internal/delivery/http/controllers"
	"eventeditor/internal/delivery/http/helpers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewAPIRouter initializes the events API routes. When protect is non-nil
// the /api routes are wrapped with it; /health and /swagger/ stay open.
func NewAPIRouter(eventController *controllers.EventController, protect func(http.Handler) http.Handler) *http.ServeMux {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/events", eventController.ListEvents)
	api.HandleFunc("POST /api/events", eventController.CreateEvent)
	api.HandleFunc("DELETE /api/events/{eventID}", eventController.DeleteEvent)

	var apiHandler http.Handler = api
	if protect != nil {
		apiHandler = protect(api)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.HandleFunc("GET /health", Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Health reports that the process is serving.
func Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
