package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdditionalTask is a named non-teaching duty carrying a lesson-hour
// equivalent weight, stored with 2-decimal precision.
type AdditionalTask struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Description  *string         `db:"description" json:"description,omitempty"`
	JPEquivalent decimal.Decimal `db:"jp_equivalent" json:"jp_equivalent"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// AdditionalTaskFilter captures filters for listing additional tasks.
type AdditionalTaskFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
