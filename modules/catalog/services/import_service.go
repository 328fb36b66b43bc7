package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/document"
	"github.com/eisenhub/catalog/modules/catalog/domain/entities/taxonomy"
	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence"
	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/eventbus"
	"github.com/eisenhub/catalog/pkg/excel"
)

// importBatchSize caps how many asset rows are buffered before a flush. Each
// flush is one transaction; committed batches stay committed when a later
// batch fails.
const importBatchSize = 1000

// maxTitleLength bounds generated titles. Longer source text is cut to 47
// characters plus an ellipsis.
const maxTitleLength = 50

// ImportCompletedEvent is published after every workbook import, including
// partially failed ones.
type ImportCompletedEvent struct {
	TenantID     uuid.UUID
	CollectionID uint
	Result       *ImportResult
}

// specificationDimensions pairs worksheet columns with the axis they resolve
// into, in resolution order. Subtopic must follow Topic: its uniqueness scope
// includes the parent topic id.
var specificationDimensions = []struct {
	column    string
	dimension taxonomy.Dimension
}{
	{ColSection, taxonomy.Section},
	{ColStage, taxonomy.Stage},
	{ColClient, taxonomy.Client},
	{ColLocation, taxonomy.Location},
	{ColArea, taxonomy.Area},
	{ColTopic, taxonomy.Topic},
	{ColSubtopic, taxonomy.Subtopic},
	{ColEnforcement, taxonomy.EnforcementLevel},
}

type ImportService struct {
	documents document.Repository
	taxonomy  taxonomy.Repository
	assets    asset.Repository
	publisher eventbus.EventBus
}

func NewImportService(
	documents document.Repository,
	taxonomyRepo taxonomy.Repository,
	assets asset.Repository,
	publisher eventbus.EventBus,
) *ImportService {
	return &ImportService{
		documents: documents,
		taxonomy:  taxonomyRepo,
		assets:    assets,
		publisher: publisher,
	}
}

// Import reads a workbook from r and runs ImportWorkbook on it.
func (s *ImportService) Import(ctx context.Context, r io.Reader, collectionID uint) (*ImportResult, error) {
	wb, err := excel.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	return s.ImportWorkbook(ctx, wb, collectionID)
}

// ImportWorkbook processes the three worksheets in a fixed order: attachments
// and references first, so specification rows can link to them, then the
// specifications themselves. A final pass backfills asset links that could
// not be resolved while their document row was processed. The returned result
// is complete even when individual rows or batches failed.
func (s *ImportService) ImportWorkbook(ctx context.Context, wb *excel.Workbook, collectionID uint) (*ImportResult, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	userID, err := composables.UseUserID(ctx)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(importDuration)
	defer timer.ObserveDuration()

	composables.UseLogger(ctx).
		WithField("sheets", wb.SheetNames()).
		Infof("importing workbook into collection %d", collectionID)

	result := NewImportResult()

	s.processAssetSheet(ctx, wb, SheetAttachments, asset.KindFile, tenantID, userID, result)
	s.processAssetSheet(ctx, wb, SheetReferences, asset.KindLink, tenantID, userID, result)
	s.processSpecifications(ctx, wb, collectionID, tenantID, userID, result)
	s.reconcileOrphanAssetLinks(ctx, collectionID, result)

	s.publisher.Publish(&ImportCompletedEvent{
		TenantID:     tenantID,
		CollectionID: collectionID,
		Result:       result,
	})
	return result, nil
}

// processAssetSheet imports one of the two asset worksheets. Rows are
// buffered and written in batches of importBatchSize; a failed batch aborts
// the sheet but leaves earlier batches committed.
func (s *ImportService) processAssetSheet(
	ctx context.Context,
	wb *excel.Workbook,
	sheetName string,
	kind asset.Kind,
	tenantID uuid.UUID,
	userID uint,
	result *ImportResult,
) {
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		result.AddMessage("worksheet %q not found, skipped", sheetName)
		return
	}

	cols, ok := readColumns(sheet, []string{ColExternalID, ColDescription}, result)
	if !ok {
		return
	}

	var (
		toInsert []*asset.Asset
		toUpdate []*asset.Asset
	)
	flush := func() bool {
		pending := len(toInsert) + len(toUpdate)
		if pending == 0 {
			return true
		}
		if err := s.assets.SaveBatch(ctx, toInsert, toUpdate); err != nil {
			composables.UseLogger(ctx).WithError(err).Errorf("batch write failed in %s", sheetName)
			result.AddSystemError(sheetName, err)
			result.FailedRecords += pending
			importRowsTotal.WithLabelValues(sheetName, "failed").Add(float64(pending))
			return false
		}
		result.SuccessfulRecords += pending
		importRowsTotal.WithLabelValues(sheetName, "success").Add(float64(pending))
		toInsert = toInsert[:0]
		toUpdate = toUpdate[:0]
		return true
	}

	seen := make(map[string]int)
	for i, row := range sheet.DataRows() {
		rowNumber := i + 1
		if excel.IsBlankRow(row) {
			continue
		}

		if missing := cols.MissingRequired(row, []string{ColExternalID, ColDescription}); len(missing) > 0 {
			result.AddValidationError(strings.Join(missing, ", "), "required value is missing", rowNumber)
			importRowsTotal.WithLabelValues(sheetName, "failed").Inc()
			continue
		}

		externalID := cols.Cell(row, ColExternalID)
		description := cols.Cell(row, ColDescription)
		if firstRow, dup := seen[externalID]; dup {
			result.AddDuplicateWarning(
				ColExternalID,
				fmt.Sprintf("id %q already appeared on row %d of %s", externalID, firstRow, sheetName),
				rowNumber,
			)
			importRowsTotal.WithLabelValues(sheetName, "failed").Inc()
			continue
		}
		seen[externalID] = rowNumber

		var name, path, url, fileType string
		switch kind {
		case asset.KindFile:
			path = cols.Cell(row, ColFilePath)
			fileType = fileTypeFromPath(path)
			name = filepath.Base(path)
			if path == "" {
				name = externalID
			}
		case asset.KindLink:
			url = cols.Cell(row, ColURL)
			name = truncateTitle(description)
		}

		existing, err := s.assets.GetByExternalID(ctx, kind, externalID)
		switch {
		case err == nil:
			existing.Refresh(name, description, path, url, fileType, userID)
			toUpdate = append(toUpdate, existing)
		case errors.Is(err, persistence.ErrAssetNotFound):
			toInsert = append(toInsert, asset.New(kind, externalID,
				asset.WithTenantID(tenantID),
				asset.WithName(name),
				asset.WithDescription(description),
				asset.WithPath(path),
				asset.WithURL(url),
				asset.WithFileType(fileType),
				asset.WithCreatedBy(userID),
			))
		default:
			composables.UseLogger(ctx).WithError(err).Errorf("asset lookup failed in %s", sheetName)
			result.AddSystemError(sheetName, err)
			result.FailedRecords++
			importRowsTotal.WithLabelValues(sheetName, "failed").Inc()
			return
		}

		if len(toInsert)+len(toUpdate) >= importBatchSize {
			if !flush() {
				return
			}
		}
	}
	flush()
}

// processSpecifications imports the main worksheet. Every row inserts a fresh
// document; re-imports version through new rows rather than updates, so the
// collection keeps its append-only ordering.
func (s *ImportService) processSpecifications(
	ctx context.Context,
	wb *excel.Workbook,
	collectionID uint,
	tenantID uuid.UUID,
	userID uint,
	result *ImportResult,
) {
	sheet, ok := wb.Sheet(SheetSpecifications)
	if !ok {
		result.AddValidationError(SheetSpecifications, "worksheet is missing", 0)
		return
	}

	requiredColumns := []string{ColExternalID, ColRequirement}
	for _, sc := range specificationDimensions {
		if sc.dimension.Required() {
			requiredColumns = append(requiredColumns, sc.column)
		}
	}
	cols, ok := readColumns(sheet, requiredColumns, result)
	if !ok {
		return
	}

	seen := make(map[string]int)
	for i, row := range sheet.DataRows() {
		rowNumber := i + 1
		if excel.IsBlankRow(row) {
			continue
		}

		if missing := cols.MissingRequired(row, requiredColumns); len(missing) > 0 {
			result.AddValidationError(strings.Join(missing, ", "), "required value is missing", rowNumber)
			importRowsTotal.WithLabelValues(SheetSpecifications, "failed").Inc()
			continue
		}

		externalID := cols.Cell(row, ColExternalID)
		if firstRow, dup := seen[externalID]; dup {
			result.AddDuplicateWarning(
				ColExternalID,
				fmt.Sprintf("id %q already appeared on row %d of %s", externalID, firstRow, SheetSpecifications),
				rowNumber,
			)
			importRowsTotal.WithLabelValues(SheetSpecifications, "failed").Inc()
			continue
		}
		seen[externalID] = rowNumber

		ok, abort := s.importSpecificationRow(ctx, cols, row, rowNumber, collectionID, tenantID, userID, result)
		if abort {
			importRowsTotal.WithLabelValues(SheetSpecifications, "failed").Inc()
			return
		}
		if ok {
			result.SuccessfulRecords++
			importRowsTotal.WithLabelValues(SheetSpecifications, "success").Inc()
		} else {
			importRowsTotal.WithLabelValues(SheetSpecifications, "failed").Inc()
		}
	}
}

// importSpecificationRow creates the document and its taxonomy and asset
// edges. It returns (rowOK, abortSheet). Unknown asset references are
// validation errors and leave the document in place; the raw reference cells
// are kept on the row so the backfill pass can complete the links later.
func (s *ImportService) importSpecificationRow(
	ctx context.Context,
	cols *sheetColumns,
	row []string,
	rowNumber int,
	collectionID uint,
	tenantID uuid.UUID,
	userID uint,
	result *ImportResult,
) (bool, bool) {
	requirement := cols.Cell(row, ColRequirement)
	linkRefs := cols.Cell(row, ColLinkRefs)
	fileRefs := cols.Cell(row, ColFileRefs)

	doc, err := s.documents.Create(ctx, document.New(truncateTitle(requirement),
		document.WithTenantID(tenantID),
		document.WithCollectionID(collectionID),
		document.WithDescription(requirement),
		document.WithStatus(document.StatusPublished),
		document.WithLinkRefs(linkRefs),
		document.WithFileRefs(fileRefs),
		document.WithCreatedBy(userID),
	))
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("document insert failed")
		result.AddSystemError(SheetSpecifications, err)
		result.FailedRecords++
		return false, true
	}

	var topicID *uint
	for _, sc := range specificationDimensions {
		name := cols.Cell(row, sc.column)
		if name == "" {
			// Only Subtopic may be blank; required axes were checked above.
			continue
		}
		scope := taxonomy.Scope{
			TenantID:     tenantID,
			CollectionID: collectionID,
			Dimension:    sc.dimension,
		}
		if sc.dimension == taxonomy.Subtopic {
			scope.ParentID = topicID
		}
		value, err := s.taxonomy.GetOrCreate(ctx, scope, name)
		if err != nil {
			composables.UseLogger(ctx).WithError(err).Errorf("failed to resolve %s value", sc.dimension)
			result.AddSystemError(sc.column, err)
			result.FailedRecords++
			return false, true
		}
		if err := s.documents.LinkTaxonomy(ctx, doc.ID(), value); err != nil {
			composables.UseLogger(ctx).WithError(err).Errorf("failed to link %s value", sc.dimension)
			result.AddSystemError(sc.column, err)
			result.FailedRecords++
			return false, true
		}
		if sc.dimension == taxonomy.Topic {
			id := value.ID()
			topicID = &id
		}
	}

	rowOK := true
	for _, ref := range []struct {
		column string
		kind   asset.Kind
		raw    string
	}{
		{ColLinkRefs, asset.KindLink, linkRefs},
		{ColFileRefs, asset.KindFile, fileRefs},
	} {
		for _, externalID := range parseRefList(ref.raw) {
			a, err := s.assets.GetByExternalID(ctx, ref.kind, externalID)
			if errors.Is(err, persistence.ErrAssetNotFound) {
				result.AddFieldError(ref.column, fmt.Sprintf("unknown reference %q", externalID), rowNumber)
				rowOK = false
				continue
			}
			if err != nil {
				composables.UseLogger(ctx).WithError(err).Error("asset lookup failed")
				result.AddSystemError(ref.column, err)
				result.FailedRecords++
				return false, true
			}
			if err := s.documents.LinkAsset(ctx, doc.ID(), a.ID(), ref.kind); err != nil {
				composables.UseLogger(ctx).WithError(err).Error("asset link failed")
				result.AddSystemError(ref.column, err)
				result.FailedRecords++
				return false, true
			}
		}
	}
	if !rowOK {
		// The row fails once, regardless of how many references missed.
		result.FailedRecords++
	}
	return rowOK, false
}

// reconcileOrphanAssetLinks re-derives asset edges from the raw reference
// cells stored on each document and creates the ones that are still missing.
// References that never resolved were already reported row-by-row and are
// skipped here.
func (s *ImportService) reconcileOrphanAssetLinks(ctx context.Context, collectionID uint, result *ImportResult) {
	docs, err := s.documents.ListActive(ctx, collectionID)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("backfill listing failed")
		result.AddSystemError(SheetSpecifications, err)
		return
	}

	created := 0
	for _, doc := range docs {
		for _, ref := range []struct {
			kind asset.Kind
			raw  string
		}{
			{asset.KindLink, doc.LinkRefs()},
			{asset.KindFile, doc.FileRefs()},
		} {
			externalIDs := parseRefList(ref.raw)
			if len(externalIDs) == 0 {
				continue
			}
			linkedIDs, err := s.documents.LinkedAssetIDs(ctx, doc.ID(), ref.kind)
			if err != nil {
				composables.UseLogger(ctx).WithError(err).Error("backfill link lookup failed")
				result.AddSystemError(SheetSpecifications, err)
				return
			}
			linked := make(map[uint]struct{}, len(linkedIDs))
			for _, id := range linkedIDs {
				linked[id] = struct{}{}
			}
			for _, externalID := range externalIDs {
				a, err := s.assets.GetByExternalID(ctx, ref.kind, externalID)
				if errors.Is(err, persistence.ErrAssetNotFound) {
					continue
				}
				if err != nil {
					composables.UseLogger(ctx).WithError(err).Error("backfill asset lookup failed")
					result.AddSystemError(SheetSpecifications, err)
					return
				}
				if _, ok := linked[a.ID()]; ok {
					continue
				}
				if err := s.documents.LinkAsset(ctx, doc.ID(), a.ID(), ref.kind); err != nil {
					composables.UseLogger(ctx).WithError(err).Error("backfill asset link failed")
					result.AddSystemError(SheetSpecifications, err)
					return
				}
				created++
			}
		}
	}
	if created > 0 {
		result.AddMessage("backfilled %d asset link(s)", created)
	}
}

// parseRefList splits a comma-separated reference cell into trimmed, deduped
// external ids, preserving first-seen order.
func parseRefList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// truncateTitle cuts text down to maxTitleLength characters, ellipsis
// included.
func truncateTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTitleLength {
		return text
	}
	return string(runes[:maxTitleLength-3]) + "..."
}

// fileTypeFromPath derives a lower-cased extension from a file path, falling
// back to the unknown sentinel.
func fileTypeFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return asset.UnknownFileType
	}
	return ext
}
