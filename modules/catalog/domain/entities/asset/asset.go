package asset

import (
	"time"

	"github.com/google/uuid"
)

// Kind separates the two external asset flavours: uploaded files
// (Attachments sheet) and source links (References sheet).
type Kind string

const (
	KindFile Kind = "file"
	KindLink Kind = "link"
)

// UnknownFileType is the sentinel recorded when no extension can be derived
// from a file path.
const UnknownFileType = "unknown"

type Asset struct {
	id          uint
	tenantID    uuid.UUID
	kind        Kind
	externalID  string
	name        string
	description string
	path        string
	url         string
	fileType    string
	isActive    bool
	createdBy   uint
	updatedBy   uint
	createdAt   time.Time
	updatedAt   time.Time
}

type Option func(*Asset)

func WithID(id uint) Option {
	return func(a *Asset) {
		a.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(a *Asset) {
		a.tenantID = tenantID
	}
}

func WithName(name string) Option {
	return func(a *Asset) {
		a.name = name
	}
}

func WithDescription(description string) Option {
	return func(a *Asset) {
		a.description = description
	}
}

func WithPath(path string) Option {
	return func(a *Asset) {
		a.path = path
	}
}

func WithURL(url string) Option {
	return func(a *Asset) {
		a.url = url
	}
}

func WithFileType(fileType string) Option {
	return func(a *Asset) {
		a.fileType = fileType
	}
}

func WithIsActive(isActive bool) Option {
	return func(a *Asset) {
		a.isActive = isActive
	}
}

func WithCreatedBy(userID uint) Option {
	return func(a *Asset) {
		a.createdBy = userID
		a.updatedBy = userID
	}
}

func WithUpdatedBy(userID uint) Option {
	return func(a *Asset) {
		a.updatedBy = userID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(a *Asset) {
		a.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(a *Asset) {
		a.updatedAt = updatedAt
	}
}

func New(kind Kind, externalID string, opts ...Option) *Asset {
	a := &Asset{
		kind:       kind,
		externalID: externalID,
		isActive:   true,
		createdAt:  time.Now(),
		updatedAt:  time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Asset) ID() uint {
	return a.id
}

func (a *Asset) TenantID() uuid.UUID {
	return a.tenantID
}

func (a *Asset) Kind() Kind {
	return a.kind
}

func (a *Asset) ExternalID() string {
	return a.externalID
}

func (a *Asset) Name() string {
	return a.name
}

func (a *Asset) Description() string {
	return a.description
}

func (a *Asset) Path() string {
	return a.path
}

func (a *Asset) URL() string {
	return a.url
}

func (a *Asset) FileType() string {
	return a.fileType
}

func (a *Asset) IsActive() bool {
	return a.isActive
}

func (a *Asset) CreatedBy() uint {
	return a.createdBy
}

func (a *Asset) UpdatedBy() uint {
	return a.updatedBy
}

func (a *Asset) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Asset) UpdatedAt() time.Time {
	return a.updatedAt
}

// Refresh overwrites the mutable fields from a re-imported row.
func (a *Asset) Refresh(name, description, path, url, fileType string, userID uint) {
	a.name = name
	a.description = description
	a.path = path
	a.url = url
	a.fileType = fileType
	a.updatedBy = userID
	a.updatedAt = time.Now()
}
