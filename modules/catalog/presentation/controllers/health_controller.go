package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eisenhub/catalog/pkg/application"
)

type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB().Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
