package taxonomy

import (
	"time"

	"github.com/google/uuid"
)

// Dimension is one of the axes a document can be classified along.
type Dimension string

const (
	Section          Dimension = "section"
	Stage            Dimension = "stage"
	Client           Dimension = "client"
	Location         Dimension = "location"
	Area             Dimension = "area"
	Topic            Dimension = "topic"
	Subtopic         Dimension = "subtopic"
	EnforcementLevel Dimension = "enforcement_level"
)

// Dimensions lists every axis in resolution order. Subtopic comes after
// Topic because its scope includes the parent topic id.
var Dimensions = []Dimension{
	Section, Stage, Client, Location, Area, Topic, Subtopic, EnforcementLevel,
}

// Required reports whether a specification row must carry a value for this
// dimension. Subtopic is the only optional axis.
func (d Dimension) Required() bool {
	return d != Subtopic
}

func (d Dimension) String() string {
	return string(d)
}

// Scope identifies the namespace a value name must be unique in. ParentID is
// set for Subtopic only and points at the parent Topic value.
type Scope struct {
	TenantID     uuid.UUID
	CollectionID uint
	Dimension    Dimension
	ParentID     *uint
}

type Value struct {
	id           uint
	tenantID     uuid.UUID
	collectionID uint
	dimension    Dimension
	name         string
	description  string
	sortOrder    int
	parentID     *uint
	isActive     bool
	createdBy    uint
	updatedBy    uint
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Value)

func WithID(id uint) Option {
	return func(v *Value) {
		v.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(v *Value) {
		v.tenantID = tenantID
	}
}

func WithCollectionID(collectionID uint) Option {
	return func(v *Value) {
		v.collectionID = collectionID
	}
}

func WithDescription(description string) Option {
	return func(v *Value) {
		v.description = description
	}
}

func WithSortOrder(sortOrder int) Option {
	return func(v *Value) {
		v.sortOrder = sortOrder
	}
}

func WithParentID(parentID *uint) Option {
	return func(v *Value) {
		v.parentID = parentID
	}
}

func WithIsActive(isActive bool) Option {
	return func(v *Value) {
		v.isActive = isActive
	}
}

func WithCreatedBy(userID uint) Option {
	return func(v *Value) {
		v.createdBy = userID
		v.updatedBy = userID
	}
}

func WithUpdatedBy(userID uint) Option {
	return func(v *Value) {
		v.updatedBy = userID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(v *Value) {
		v.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(v *Value) {
		v.updatedAt = updatedAt
	}
}

func New(dimension Dimension, name string, opts ...Option) *Value {
	v := &Value{
		dimension: dimension,
		name:      name,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Value) ID() uint {
	return v.id
}

func (v *Value) TenantID() uuid.UUID {
	return v.tenantID
}

func (v *Value) CollectionID() uint {
	return v.collectionID
}

func (v *Value) Dimension() Dimension {
	return v.dimension
}

func (v *Value) Name() string {
	return v.name
}

func (v *Value) Description() string {
	return v.description
}

func (v *Value) SortOrder() int {
	return v.sortOrder
}

func (v *Value) ParentID() *uint {
	return v.parentID
}

func (v *Value) IsActive() bool {
	return v.isActive
}

func (v *Value) CreatedBy() uint {
	return v.createdBy
}

func (v *Value) UpdatedBy() uint {
	return v.updatedBy
}

func (v *Value) CreatedAt() time.Time {
	return v.createdAt
}

func (v *Value) UpdatedAt() time.Time {
	return v.updatedAt
}

// Scope returns the uniqueness namespace this value lives in.
func (v *Value) Scope() Scope {
	return Scope{
		TenantID:     v.tenantID,
		CollectionID: v.collectionID,
		Dimension:    v.dimension,
		ParentID:     v.parentID,
	}
}
