package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eisenhub/catalog/modules/catalog/presentation/controllers/dtos"
	"github.com/eisenhub/catalog/modules/catalog/services"
	"github.com/eisenhub/catalog/pkg/application"
	"github.com/eisenhub/catalog/pkg/configuration"
	"github.com/eisenhub/catalog/pkg/middleware"
)

type ImportController struct {
	app           application.Application
	importService *services.ImportService
	basePath      string
}

func NewImportController(app application.Application, importService *services.ImportService) application.Controller {
	return &ImportController{
		app:           app,
		importService: importService,
		basePath:      "/catalog",
	}
}

func (c *ImportController) Key() string {
	return "/catalog/import"
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.ProvideTenant(),
		middleware.ProvideUser(),
	)
	router.HandleFunc("/collections/{collectionID:[0-9]+}/import", c.Import).Methods(http.MethodPost)
}

// Import accepts a workbook as the multipart field "file" and runs the full
// import pipeline. The response is always a complete import result, also on
// partial failure.
func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	collectionID, err := strconv.ParseUint(mux.Vars(r)["collectionID"], 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid collection id", err)
		return
	}
	dto := &dtos.ImportDTO{CollectionID: uint(collectionID)}
	if err := dto.Ok(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid collection id", err)
		return
	}

	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to parse upload", err)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file field", err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := c.importService.Import(r.Context(), file, dto.CollectionID)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "failed to process workbook", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
