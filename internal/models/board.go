package models

import "time"

// Board conditions.
const (
	ConditionNew       = "New"
	ConditionRepaired  = "Repaired"
	ConditionRepairing = "Repairing"
	ConditionScrap     = "Scrap"
)

// Board locations.
const (
	LocationInStock        = "In stock"
	LocationIssuedMachine  = "Issued for machine"
	LocationRepairing      = "Repairing"
	LocationIssuedSpares   = "Issued for spares"
	LocationAtCustomerSite = "At customer site"
)

// Board is a physical tracked unit. (category_id, serial_number) is
// unique; both are immutable after creation.
type Board struct {
	ID             string     `bson:"id" json:"id"`
	CategoryID     string     `bson:"category_id" json:"category_id"`
	SerialNumber   string     `bson:"serial_number" json:"serial_number"`
	Condition      string     `bson:"condition" json:"condition"`
	Location       string     `bson:"location" json:"location"`
	IssuedBy       string     `bson:"issued_by,omitempty" json:"issued_by,omitempty"`
	IssuedTo       string     `bson:"issued_to,omitempty" json:"issued_to,omitempty"`
	QCBy           string     `bson:"qc_by,omitempty" json:"qc_by,omitempty"`
	ProjectNumber  string     `bson:"project_number,omitempty" json:"project_number,omitempty"`
	Comments       string     `bson:"comments,omitempty" json:"comments,omitempty"`
	InwardDateTime time.Time  `bson:"inward_date_time" json:"inward_date_time"`
	IssuedDateTime *time.Time `bson:"issued_date_time,omitempty" json:"issued_date_time,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	CreatedBy      string     `bson:"created_by" json:"created_by"`
}

// BoardPatch is a partial update for a board. Category and serial number
// are deliberately absent: they cannot change after creation.
type BoardPatch struct {
	Location      *string `json:"location"`
	Condition     *string `json:"condition"`
	IssuedBy      *string `json:"issued_by"`
	IssuedTo      *string `json:"issued_to"`
	QCBy          *string `json:"qc_by"`
	ProjectNumber *string `json:"project_number"`
	Comments      *string `json:"comments"`
}

// BoardFilter narrows board listings. Zero values mean "any".
// SearchText matches serial number, issued-to, project number and
// comments case-insensitively.
type BoardFilter struct {
	CategoryID string
	Location   string
	Condition  string
	SearchText string
}
