package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eisenhub/catalog/modules/catalog/presentation/controllers/dtos"
	"github.com/eisenhub/catalog/modules/catalog/presentation/mappers"
	"github.com/eisenhub/catalog/modules/catalog/services"
	"github.com/eisenhub/catalog/pkg/application"
	"github.com/eisenhub/catalog/pkg/middleware"
)

type TreeController struct {
	app         application.Application
	treeService *services.TreeService
	basePath    string
}

func NewTreeController(app application.Application, treeService *services.TreeService) application.Controller {
	return &TreeController{
		app:         app,
		treeService: treeService,
		basePath:    "/catalog",
	}
}

func (c *TreeController) Key() string {
	return "/catalog/tree"
}

func (c *TreeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideTenant())
	router.HandleFunc("/collections/{collectionID:[0-9]+}/tree", c.Tree).Methods(http.MethodGet)
	router.HandleFunc("/collections/{collectionID:[0-9]+}/filters", c.Filters).Methods(http.MethodGet)
}

// Tree returns the nested section tree. Optional query parameters restrict
// the result: sections, stages, locations, areas and topics each take a
// comma-separated list of ordering-index values.
func (c *TreeController) Tree(w http.ResponseWriter, r *http.Request) {
	dto, err := c.parseTreeQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid tree query", err)
		return
	}

	tree, err := c.treeService.BuildTree(r.Context(), dto.CollectionID, services.TreeFilters{
		Sections:  dto.Sections,
		Stages:    dto.Stages,
		Locations: dto.Locations,
		Areas:     dto.Areas,
		Topics:    dto.Topics,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to build tree", err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.TreeToViewModel(tree))
}

// Filters returns the filter catalog, optionally scoped to documents inside
// the sections given as a comma-separated sectionIds parameter.
func (c *TreeController) Filters(w http.ResponseWriter, r *http.Request) {
	collectionID, err := strconv.ParseUint(mux.Vars(r)["collectionID"], 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid collection id", err)
		return
	}
	sectionIDs, err := dtos.ParseUintList(r.URL.Query(), "sectionIds")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid sectionIds parameter", err)
		return
	}
	dto := &dtos.FilterQueryDTO{CollectionID: uint(collectionID), SectionIDs: sectionIDs}
	if err := dto.Ok(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid filter query", err)
		return
	}

	catalog, err := c.treeService.ListFilters(r.Context(), dto.CollectionID, dto.SectionIDs)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to list filters", err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.FilterCatalogToViewModel(catalog))
}

func (c *TreeController) parseTreeQuery(r *http.Request) (*dtos.TreeQueryDTO, error) {
	collectionID, err := strconv.ParseUint(mux.Vars(r)["collectionID"], 10, 64)
	if err != nil {
		return nil, err
	}
	dto := &dtos.TreeQueryDTO{CollectionID: uint(collectionID)}

	q := r.URL.Query()
	for _, target := range []struct {
		key string
		dst *[]int
	}{
		{"sections", &dto.Sections},
		{"stages", &dto.Stages},
		{"locations", &dto.Locations},
		{"areas", &dto.Areas},
		{"topics", &dto.Topics},
	} {
		values, err := dtos.ParseIntList(q, target.key)
		if err != nil {
			return nil, err
		}
		*target.dst = values
	}
	if err := dto.Ok(); err != nil {
		return nil, err
	}
	return dto, nil
}
