package dtos

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ImportDTO carries the parameters of one workbook upload.
type ImportDTO struct {
	CollectionID uint `validate:"required,min=1"`
}

func (d *ImportDTO) Ok() error {
	return validate.Struct(d)
}

// TreeQueryDTO carries the tree request: the collection and the optional
// per-dimension sets of ordering-index values.
type TreeQueryDTO struct {
	CollectionID uint  `validate:"required,min=1"`
	Sections     []int `validate:"dive,min=1"`
	Stages       []int `validate:"dive,min=1"`
	Locations    []int `validate:"dive,min=1"`
	Areas        []int `validate:"dive,min=1"`
	Topics       []int `validate:"dive,min=1"`
}

func (d *TreeQueryDTO) Ok() error {
	return validate.Struct(d)
}

// FilterQueryDTO carries the filter-catalog request.
type FilterQueryDTO struct {
	CollectionID uint   `validate:"required,min=1"`
	SectionIDs   []uint `validate:"dive,min=1"`
}

func (d *FilterQueryDTO) Ok() error {
	return validate.Struct(d)
}

// ParseIntList splits a comma-separated query parameter into ints, ignoring
// blanks.
func ParseIntList(values url.Values, key string) ([]int, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseUintList is ParseIntList for id lists.
func ParseUintList(values url.Values, key string) ([]uint, error) {
	ints, err := ParseIntList(values, key)
	if err != nil {
		return nil, err
	}
	out := make([]uint, 0, len(ints))
	for _, n := range ints {
		out = append(out, uint(n))
	}
	return out, nil
}
