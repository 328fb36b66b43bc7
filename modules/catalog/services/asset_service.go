package services

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
)

// ErrAssetNotDownloadable is returned for assets without a stored blob, such
// as link references.
var ErrAssetNotDownloadable = errors.New("asset has no downloadable blob")

// AssetService serves the document-details download flow.
type AssetService struct {
	assets  asset.Repository
	storage asset.Storage
}

func NewAssetService(assets asset.Repository, storage asset.Storage) *AssetService {
	return &AssetService{assets: assets, storage: storage}
}

// Download returns the asset metadata together with its blob content. The
// caller owns the returned reader.
func (s *AssetService) Download(ctx context.Context, id uint) (*asset.Asset, io.ReadCloser, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a.Kind() != asset.KindFile || a.Path() == "" {
		return nil, nil, ErrAssetNotDownloadable
	}
	rc, err := s.storage.Get(ctx, a.Path())
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open blob for asset %d", id)
	}
	return a, rc, nil
}
