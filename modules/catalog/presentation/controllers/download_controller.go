package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence"
	"github.com/eisenhub/catalog/modules/catalog/services"
	"github.com/eisenhub/catalog/pkg/application"
	"github.com/eisenhub/catalog/pkg/middleware"
)

type DownloadController struct {
	app          application.Application
	assetService *services.AssetService
	basePath     string
}

func NewDownloadController(app application.Application, assetService *services.AssetService) application.Controller {
	return &DownloadController{
		app:          app,
		assetService: assetService,
		basePath:     "/catalog",
	}
}

func (c *DownloadController) Key() string {
	return "/catalog/download"
}

func (c *DownloadController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideTenant())
	router.HandleFunc("/assets/{id:[0-9]+}/download", c.Download).Methods(http.MethodGet)
}

// Download streams the blob of a file asset to the client.
func (c *DownloadController) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid asset id", err)
		return
	}

	a, rc, err := c.assetService.Download(r.Context(), uint(id))
	switch {
	case errors.Is(err, persistence.ErrAssetNotFound):
		writeError(w, r, http.StatusNotFound, "asset not found", nil)
		return
	case errors.Is(err, services.ErrAssetNotDownloadable):
		writeError(w, r, http.StatusNotFound, "asset has no file", nil)
		return
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, "failed to read asset", err)
		return
	}
	defer func() {
		_ = rc.Close()
	}()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name()))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		// The response is already streaming; a broken pipe here is the
		// client's problem.
		return
	}
}
