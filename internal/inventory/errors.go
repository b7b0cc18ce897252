package inventory

import (
	"errors"
	"fmt"
)

// Sentinel failures returned by the workflow engine. Handlers translate
// these into HTTP statuses; nothing here is retried automatically.
var (
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("permission denied")
	ErrInvalidTransition      = errors.New("request is in a terminal state")
	ErrBoardUnavailable       = errors.New("board not available or not found")
	ErrBoardNoLongerAvailable = errors.New("board is no longer available")
	ErrRequestNotApproved     = errors.New("request is not approved")
	ErrInvalidRange           = errors.New("end serial must not be less than start serial")
	ErrNoBoardsIssued         = errors.New("no boards could be issued")
	ErrValidation             = errors.New("invalid input")
)

// DuplicateSerialError reports a serial number that already exists in a
// category.
type DuplicateSerialError struct {
	CategoryID   string
	SerialNumber string
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("serial number %s already exists in this category", e.SerialNumber)
}

// StockShortage names one category that cannot cover a request.
type StockShortage struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Requested    int    `json:"requested"`
	Available    int    `json:"available"`
	Reason       string `json:"reason"`
}

// InsufficientStockError carries per-category detail for a bulk request
// that failed validation. Bulk creation is all-or-nothing: nothing is
// persisted when this is returned.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	msg := "bulk request failed:"
	for i, s := range e.Shortages {
		if i > 0 {
			msg += ";"
		}
		if s.Reason != "" {
			msg += fmt.Sprintf(" %s: %s", s.CategoryName, s.Reason)
		} else {
			msg += fmt.Sprintf(" %s: need %d, available %d", s.CategoryName, s.Requested, s.Available)
		}
	}
	return msg
}

// FailureDetail is one board that could not be issued during outward
// fulfillment. Partial failure is reported, not raised: callers inspect
// both the issued and failed lists.
type FailureDetail struct {
	CategoryID   string `json:"category_id"`
	SerialNumber string `json:"serial_number,omitempty"`
	Reason       string `json:"reason"`
}
