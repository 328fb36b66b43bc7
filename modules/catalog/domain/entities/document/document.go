package document

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

type Document struct {
	id           uint
	tenantID     uuid.UUID
	collectionID uint
	title        string
	description  string
	status       Status
	version      int
	sortOrder    int
	linkRefs     string
	fileRefs     string
	isActive     bool
	createdBy    uint
	updatedBy    uint
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Document)

func WithID(id uint) Option {
	return func(d *Document) {
		d.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(d *Document) {
		d.tenantID = tenantID
	}
}

func WithCollectionID(collectionID uint) Option {
	return func(d *Document) {
		d.collectionID = collectionID
	}
}

func WithDescription(description string) Option {
	return func(d *Document) {
		d.description = description
	}
}

func WithStatus(status Status) Option {
	return func(d *Document) {
		d.status = status
	}
}

func WithVersion(version int) Option {
	return func(d *Document) {
		d.version = version
	}
}

func WithSortOrder(sortOrder int) Option {
	return func(d *Document) {
		d.sortOrder = sortOrder
	}
}

// WithLinkRefs keeps the raw comma-separated external link identifiers from
// the source row; the orphan backfill pass re-derives edges from it.
func WithLinkRefs(linkRefs string) Option {
	return func(d *Document) {
		d.linkRefs = linkRefs
	}
}

func WithFileRefs(fileRefs string) Option {
	return func(d *Document) {
		d.fileRefs = fileRefs
	}
}

func WithIsActive(isActive bool) Option {
	return func(d *Document) {
		d.isActive = isActive
	}
}

func WithCreatedBy(userID uint) Option {
	return func(d *Document) {
		d.createdBy = userID
		d.updatedBy = userID
	}
}

func WithUpdatedBy(userID uint) Option {
	return func(d *Document) {
		d.updatedBy = userID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(d *Document) {
		d.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(d *Document) {
		d.updatedAt = updatedAt
	}
}

func New(title string, opts ...Option) *Document {
	d := &Document{
		title:     title,
		status:    StatusDraft,
		version:   1,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) ID() uint {
	return d.id
}

func (d *Document) TenantID() uuid.UUID {
	return d.tenantID
}

func (d *Document) CollectionID() uint {
	return d.collectionID
}

func (d *Document) Title() string {
	return d.title
}

func (d *Document) Description() string {
	return d.description
}

func (d *Document) Status() Status {
	return d.status
}

func (d *Document) Version() int {
	return d.version
}

func (d *Document) SortOrder() int {
	return d.sortOrder
}

func (d *Document) LinkRefs() string {
	return d.linkRefs
}

func (d *Document) FileRefs() string {
	return d.fileRefs
}

func (d *Document) IsActive() bool {
	return d.isActive
}

func (d *Document) CreatedBy() uint {
	return d.createdBy
}

func (d *Document) UpdatedBy() uint {
	return d.updatedBy
}

func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Document) UpdatedAt() time.Time {
	return d.updatedAt
}

// BumpVersion increments the version counter. Single-row re-imports that
// match an existing document go through here.
func (d *Document) BumpVersion(userID uint) {
	d.version++
	d.updatedBy = userID
	d.updatedAt = time.Now()
}

func (d *Document) SetDescription(description string, userID uint) {
	d.description = description
	d.updatedBy = userID
	d.updatedAt = time.Now()
}
