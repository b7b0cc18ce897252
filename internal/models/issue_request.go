package models

import "time"

// Issue request lifecycle. Pending moves to approved or rejected;
// approved moves to issued through outward fulfillment. Issued and
// rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusIssued   = "issued"
	StatusRejected = "rejected"
)

// IssueRequest is a recorded intent to withdraw one specific board.
type IssueRequest struct {
	ID               string     `bson:"id" json:"id"`
	CategoryID       string     `bson:"category_id" json:"category_id"`
	SerialNumber     string     `bson:"serial_number" json:"serial_number"`
	IssuedTo         string     `bson:"issued_to" json:"issued_to"`
	ProjectNumber    string     `bson:"project_number" json:"project_number"`
	Comments         string     `bson:"comments,omitempty" json:"comments,omitempty"`
	RequestedBy      string     `bson:"requested_by" json:"requested_by"`
	Status           string     `bson:"status" json:"status"`
	CreatedDateTime  time.Time  `bson:"created_date_time" json:"created_date_time"`
	ApprovedBy       string     `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ApprovedDateTime *time.Time `bson:"approved_date_time,omitempty" json:"approved_date_time,omitempty"`

	// Display names, populated by the API layer from the user store.
	RequestedByName string `bson:"-" json:"requested_by_name,omitempty"`
	IssuedToName    string `bson:"-" json:"issued_to_name,omitempty"`
}

// Bulk entry modes. An entry either names its serial numbers or asks for
// a quantity to be auto-selected at approval time, never both.
const (
	BulkModeExplicit = "serials"
	BulkModeAuto     = "quantity"
)

// BulkEntry is one category line of a bulk issue request.
type BulkEntry struct {
	CategoryID    string   `bson:"category_id" json:"category_id"`
	Mode          string   `bson:"mode" json:"mode"`
	SerialNumbers []string `bson:"serial_numbers,omitempty" json:"serial_numbers,omitempty"`
	Quantity      int      `bson:"quantity,omitempty" json:"quantity,omitempty"`
}

// Boards returns how many boards the entry asks for.
func (e BulkEntry) Boards() int {
	if e.Mode == BulkModeExplicit {
		return len(e.SerialNumbers)
	}
	return e.Quantity
}

// BoardAssignment is a concrete board frozen into a bulk request at
// approval time.
type BoardAssignment struct {
	CategoryID   string `bson:"category_id" json:"category_id"`
	SerialNumber string `bson:"serial_number" json:"serial_number"`
}

// BulkIssueRequest is a recorded intent to withdraw boards across up to
// five categories. Boards is empty until approval resolves the entries
// into concrete assignments.
type BulkIssueRequest struct {
	ID               string            `bson:"id" json:"id"`
	Categories       []BulkEntry       `bson:"categories" json:"categories"`
	Boards           []BoardAssignment `bson:"boards,omitempty" json:"boards,omitempty"`
	IssuedTo         string            `bson:"issued_to" json:"issued_to"`
	ProjectNumber    string            `bson:"project_number" json:"project_number"`
	Comments         string            `bson:"comments,omitempty" json:"comments,omitempty"`
	RequestedBy      string            `bson:"requested_by" json:"requested_by"`
	Status           string            `bson:"status" json:"status"`
	CreatedDateTime  time.Time         `bson:"created_date_time" json:"created_date_time"`
	ApprovedBy       string            `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ApprovedDateTime *time.Time        `bson:"approved_date_time,omitempty" json:"approved_date_time,omitempty"`

	RequestedByName string `bson:"-" json:"requested_by_name,omitempty"`
	IssuedToName    string `bson:"-" json:"issued_to_name,omitempty"`
}

// TotalBoards is the number of boards the request asks for across all
// category entries.
func (r *BulkIssueRequest) TotalBoards() int {
	total := 0
	for _, e := range r.Categories {
		total += e.Boards()
	}
	return total
}
