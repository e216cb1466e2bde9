package models

import "time"

// School holds the institution profile used for decree letterheads.
type School struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	NPSN           string    `db:"npsn" json:"npsn"`
	Address        string    `db:"address" json:"address"`
	HeadmasterName string    `db:"headmaster_name" json:"headmaster_name"`
	HeadmasterNIP  string    `db:"headmaster_nip" json:"headmaster_nip"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
