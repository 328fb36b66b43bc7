package catalog

import (
	"context"

	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/query"
	"github.com/eisenhub/catalog/modules/catalog/presentation/controllers"
	"github.com/eisenhub/catalog/modules/catalog/services"
	"github.com/eisenhub/catalog/pkg/application"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "catalog"
}

func (m *Module) Register(app application.Application) error {
	documentRepo := persistence.NewDocumentRepository()
	taxonomyRepo := persistence.NewTaxonomyRepository()
	assetRepo := persistence.NewAssetRepository()
	storage, err := persistence.NewStorage(context.Background())
	if err != nil {
		return err
	}

	importService := services.NewImportService(documentRepo, taxonomyRepo, assetRepo, app.EventPublisher())
	treeService := services.NewTreeService(query.NewPgTreeQueryRepository())
	assetService := services.NewAssetService(assetRepo, storage)

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewImportController(app, importService),
		controllers.NewTreeController(app, treeService),
		controllers.NewDownloadController(app, assetService),
	)
	return nil
}
