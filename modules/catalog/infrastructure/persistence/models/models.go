package models

import (
	"database/sql"
	"time"
)

type Document struct {
	ID           uint
	TenantID     string
	CollectionID uint
	Title        string
	Description  sql.NullString
	Status       string
	Version      int
	SortOrder    int
	LinkRefs     sql.NullString
	FileRefs     sql.NullString
	IsActive     bool
	CreatedBy    uint
	UpdatedBy    uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TaxonomyValue struct {
	ID           uint
	TenantID     string
	CollectionID uint
	Dimension    string
	Name         string
	Description  sql.NullString
	SortOrder    int
	ParentID     sql.NullInt64
	IsActive     bool
	CreatedBy    uint
	UpdatedBy    uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Asset struct {
	ID          uint
	TenantID    string
	Kind        string
	ExternalID  string
	Name        sql.NullString
	Description sql.NullString
	Path        sql.NullString
	URL         sql.NullString
	FileType    sql.NullString
	IsActive    bool
	CreatedBy   uint
	UpdatedBy   uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
