package inventory

import (
	"context"
	"fmt"

	"board-inventory-api-server/internal/models"
)

// OutwardOverrides optionally replace the recipient and issuer recorded
// on the boards at fulfillment time.
type OutwardOverrides struct {
	IssuedTo string
	IssuedBy string
	Comments string
}

// OutwardResult reports a fulfillment run. Partial failure on bulk
// requests is a success-shaped result: callers must inspect both lists
// to report "7 of 10 issued".
type OutwardResult struct {
	RequestID string          `json:"request_id"`
	Issued    []models.Board  `json:"issued"`
	Failed    []FailureDetail `json:"failed"`
}

// IssueFromRequest fulfils an approved request, single or bulk. Every
// board is re-validated against current availability immediately before
// its mutation — approval froze the selection, it did not reserve the
// boards, and another actor may have direct-issued one in between.
func (s *Service) IssueFromRequest(ctx context.Context, actor *models.User, requestID string, overrides OutwardOverrides) (*OutwardResult, error) {
	if !Can(actor, PermCreateOutward) {
		return nil, ErrForbidden
	}

	single, err := s.store.IssueRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("looking up request: %w", err)
	}
	if single != nil {
		return s.issueSingle(ctx, actor, single, overrides)
	}

	bulk, err := s.store.BulkRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("looking up bulk request: %w", err)
	}
	if bulk != nil {
		return s.issueBulk(ctx, actor, bulk, overrides)
	}
	return nil, fmt.Errorf("request: %w", ErrNotFound)
}

func (s *Service) issuance(actor *models.User, issuedTo, projectNumber string, overrides OutwardOverrides) Issuance {
	iss := Issuance{
		IssuedTo:      issuedTo,
		IssuedBy:      actor.Email,
		ProjectNumber: projectNumber,
		Comments:      overrides.Comments,
		At:            s.now(),
	}
	if overrides.IssuedTo != "" {
		iss.IssuedTo = overrides.IssuedTo
	}
	if overrides.IssuedBy != "" {
		iss.IssuedBy = overrides.IssuedBy
	}
	return iss
}

func (s *Service) issueSingle(ctx context.Context, actor *models.User, request *models.IssueRequest, overrides OutwardOverrides) (*OutwardResult, error) {
	if request.Status != models.StatusApproved {
		return nil, ErrRequestNotApproved
	}

	board, err := s.store.BoardBySerial(ctx, request.CategoryID, request.SerialNumber)
	if err != nil {
		return nil, fmt.Errorf("looking up board: %w", err)
	}
	if board == nil {
		return nil, ErrBoardNoLongerAvailable
	}

	ok, err := s.store.IssueBoard(ctx, board.ID, s.issuance(actor, request.IssuedTo, request.ProjectNumber, overrides), false)
	if err != nil {
		return nil, fmt.Errorf("issuing board: %w", err)
	}
	if !ok {
		// The request stays approved; the caller may retry once stock
		// recovers or reject it.
		return nil, ErrBoardNoLongerAvailable
	}

	request.Status = models.StatusIssued
	if _, err := s.store.UpdateIssueRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("updating request: %w", err)
	}

	issued, err := s.store.BoardByID(ctx, board.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading board: %w", err)
	}
	result := &OutwardResult{RequestID: request.ID, Issued: []models.Board{*issued}, Failed: []FailureDetail{}}
	s.notify(EventRequestIssued, result)
	return result, nil
}

func (s *Service) issueBulk(ctx context.Context, actor *models.User, request *models.BulkIssueRequest, overrides OutwardOverrides) (*OutwardResult, error) {
	if request.Status != models.StatusApproved {
		return nil, ErrRequestNotApproved
	}

	result := &OutwardResult{RequestID: request.ID, Issued: []models.Board{}, Failed: []FailureDetail{}}

	// Each frozen assignment is committed independently: one stale
	// board must not roll back the boards that did go out.
	for _, assignment := range request.Boards {
		board, err := s.store.BoardBySerial(ctx, assignment.CategoryID, assignment.SerialNumber)
		if err != nil {
			return nil, fmt.Errorf("looking up board: %w", err)
		}
		if board == nil {
			result.Failed = append(result.Failed, FailureDetail{
				CategoryID:   assignment.CategoryID,
				SerialNumber: assignment.SerialNumber,
				Reason:       "board not found",
			})
			continue
		}

		ok, err := s.store.IssueBoard(ctx, board.ID, s.issuance(actor, request.IssuedTo, request.ProjectNumber, overrides), false)
		if err != nil {
			return nil, fmt.Errorf("issuing board: %w", err)
		}
		if !ok {
			result.Failed = append(result.Failed, FailureDetail{
				CategoryID:   assignment.CategoryID,
				SerialNumber: assignment.SerialNumber,
				Reason:       "board is no longer available",
			})
			continue
		}

		issued, err := s.store.BoardByID(ctx, board.ID)
		if err != nil {
			return nil, fmt.Errorf("reloading board: %w", err)
		}
		result.Issued = append(result.Issued, *issued)
	}

	if len(result.Issued) == 0 {
		// Nothing went out: the request stays approved.
		return nil, ErrNoBoardsIssued
	}

	request.Status = models.StatusIssued
	if _, err := s.store.UpdateBulkRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("updating bulk request: %w", err)
	}
	s.notify(EventRequestIssued, result)
	return result, nil
}

// DirectIssueInput is the input for issuing a board outside the request
// workflow.
type DirectIssueInput struct {
	IssuedTo      string
	ProjectNumber string
	Comments      string
}

// IssueDirect issues a board without a request. This path alone uses
// the extended availability rule: a repaired board still at the repair
// location may go straight out.
func (s *Service) IssueDirect(ctx context.Context, actor *models.User, boardID string, in DirectIssueInput) (*models.Board, error) {
	if !Can(actor, PermCreateOutward) {
		return nil, ErrForbidden
	}
	if in.IssuedTo == "" {
		return nil, fmt.Errorf("%w: issued_to is required", ErrValidation)
	}

	board, err := s.store.BoardByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("looking up board: %w", err)
	}
	if board == nil {
		return nil, ErrBoardUnavailable
	}

	iss := Issuance{
		IssuedTo:      in.IssuedTo,
		IssuedBy:      actor.Email,
		ProjectNumber: in.ProjectNumber,
		Comments:      in.Comments,
		At:            s.now(),
	}
	ok, err := s.store.IssueBoard(ctx, boardID, iss, true)
	if err != nil {
		return nil, fmt.Errorf("issuing board: %w", err)
	}
	if !ok {
		return nil, ErrBoardUnavailable
	}
	return s.store.BoardByID(ctx, boardID)
}
