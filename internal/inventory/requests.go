package inventory

import (
	"context"
	"fmt"

	"board-inventory-api-server/internal/models"

	"github.com/google/uuid"
)

// Bulk request limits, validated all-or-nothing at creation time.
const (
	MaxBulkCategories  = 5
	MaxBoardsPerEntry  = 50
	MaxBulkTotalBoards = 250
)

// Workflow event names pushed through the Notifier.
const (
	EventRequestCreated  = "request_created"
	EventRequestApproved = "request_approved"
	EventRequestRejected = "request_rejected"
	EventRequestIssued   = "request_issued"
)

// CreateIssueRequestInput is the input for a single-board request.
type CreateIssueRequestInput struct {
	CategoryID    string
	SerialNumber  string
	IssuedTo      string
	ProjectNumber string
	Comments      string
}

// CreateIssueRequest records a pending request for one specific board.
// The named board must be available for issue right now; this is a soft
// check — the board is not reserved, and availability is re-validated
// at approval and again at issuance.
func (s *Service) CreateIssueRequest(ctx context.Context, actor *models.User, in CreateIssueRequestInput) (*models.IssueRequest, error) {
	if !Can(actor, PermCreateIssueRequests) {
		return nil, ErrForbidden
	}
	if in.CategoryID == "" || in.SerialNumber == "" || in.IssuedTo == "" {
		return nil, fmt.Errorf("%w: category_id, serial_number and issued_to are required", ErrValidation)
	}

	category, err := s.store.CategoryByID(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	board, err := s.store.BoardBySerial(ctx, in.CategoryID, in.SerialNumber)
	if err != nil {
		return nil, fmt.Errorf("looking up board: %w", err)
	}
	if board == nil || !AvailableForIssue(board) {
		return nil, ErrBoardUnavailable
	}

	request := &models.IssueRequest{
		ID:              uuid.New().String(),
		CategoryID:      in.CategoryID,
		SerialNumber:    in.SerialNumber,
		IssuedTo:        in.IssuedTo,
		ProjectNumber:   in.ProjectNumber,
		Comments:        in.Comments,
		RequestedBy:     actor.Email,
		Status:          models.StatusPending,
		CreatedDateTime: s.now(),
	}
	if err := s.store.InsertIssueRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("inserting issue request: %w", err)
	}
	s.notify(EventRequestCreated, request)
	return request, nil
}

// BulkEntryInput is one category line of a bulk request: either explicit
// serial numbers or an auto-select quantity, never both.
type BulkEntryInput struct {
	CategoryID    string   `json:"category_id"`
	SerialNumbers []string `json:"serial_numbers,omitempty"`
	Quantity      int      `json:"quantity,omitempty"`
}

// CreateBulkRequestInput is the input for a multi-category request.
type CreateBulkRequestInput struct {
	Categories    []BulkEntryInput
	IssuedTo      string
	ProjectNumber string
	Comments      string
}

// CreateBulkRequest records a pending bulk request. Validation is
// all-or-nothing: every entry must pass shape checks and the
// availability soft-check or nothing is persisted. Auto-select entries
// are resolved to concrete boards at approval time, not here, so stock
// is never reserved early.
func (s *Service) CreateBulkRequest(ctx context.Context, actor *models.User, in CreateBulkRequestInput) (*models.BulkIssueRequest, error) {
	if !Can(actor, PermCreateIssueRequests) {
		return nil, ErrForbidden
	}
	if len(in.Categories) == 0 || len(in.Categories) > MaxBulkCategories {
		return nil, fmt.Errorf("%w: a bulk request needs 1 to %d categories", ErrValidation, MaxBulkCategories)
	}
	if in.IssuedTo == "" || in.ProjectNumber == "" {
		return nil, fmt.Errorf("%w: issued_to and project_number are required", ErrValidation)
	}

	entries := make([]models.BulkEntry, 0, len(in.Categories))
	total := 0
	var shortages []StockShortage

	for _, entry := range in.Categories {
		hasSerials := len(entry.SerialNumbers) > 0
		hasQuantity := entry.Quantity > 0
		if hasSerials == hasQuantity {
			return nil, fmt.Errorf("%w: each category entry needs either serial_numbers or quantity", ErrValidation)
		}
		if len(entry.SerialNumbers) > MaxBoardsPerEntry || entry.Quantity > MaxBoardsPerEntry {
			return nil, fmt.Errorf("%w: at most %d boards per category entry", ErrValidation, MaxBoardsPerEntry)
		}

		category, err := s.store.CategoryByID(ctx, entry.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("looking up category: %w", err)
		}
		if category == nil {
			shortages = append(shortages, StockShortage{
				CategoryID:   entry.CategoryID,
				CategoryName: "Unknown",
				Reason:       "category not found",
			})
			continue
		}

		available, err := s.AvailableBoards(ctx, entry.CategoryID)
		if err != nil {
			return nil, err
		}

		if hasSerials {
			availableSet := make(map[string]struct{}, len(available))
			for _, b := range available {
				availableSet[b.SerialNumber] = struct{}{}
			}
			for _, serial := range entry.SerialNumbers {
				if _, ok := availableSet[serial]; !ok {
					shortages = append(shortages, StockShortage{
						CategoryID:   entry.CategoryID,
						CategoryName: category.Name,
						Reason:       fmt.Sprintf("board %s is not available", serial),
					})
				}
			}
			entries = append(entries, models.BulkEntry{
				CategoryID:    entry.CategoryID,
				Mode:          models.BulkModeExplicit,
				SerialNumbers: entry.SerialNumbers,
			})
			total += len(entry.SerialNumbers)
		} else {
			if len(available) < entry.Quantity {
				shortages = append(shortages, StockShortage{
					CategoryID:   entry.CategoryID,
					CategoryName: category.Name,
					Requested:    entry.Quantity,
					Available:    len(available),
					Reason:       fmt.Sprintf("need %d, available %d", entry.Quantity, len(available)),
				})
			}
			entries = append(entries, models.BulkEntry{
				CategoryID: entry.CategoryID,
				Mode:       models.BulkModeAuto,
				Quantity:   entry.Quantity,
			})
			total += entry.Quantity
		}
	}

	if total > MaxBulkTotalBoards {
		return nil, fmt.Errorf("%w: at most %d boards per bulk request", ErrValidation, MaxBulkTotalBoards)
	}
	if len(shortages) > 0 {
		return nil, &InsufficientStockError{Shortages: shortages}
	}

	request := &models.BulkIssueRequest{
		ID:              uuid.New().String(),
		Categories:      entries,
		IssuedTo:        in.IssuedTo,
		ProjectNumber:   in.ProjectNumber,
		Comments:        in.Comments,
		RequestedBy:     actor.Email,
		Status:          models.StatusPending,
		CreatedDateTime: s.now(),
	}
	if err := s.store.InsertBulkRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("inserting bulk request: %w", err)
	}
	s.notify(EventRequestCreated, request)
	return request, nil
}

// PreviewAutoSelect shows which boards an auto-select entry would take
// right now, without reserving anything.
func (s *Service) PreviewAutoSelect(ctx context.Context, categoryID string, quantity int) ([]models.Board, error) {
	if categoryID == "" || quantity <= 0 {
		return nil, fmt.Errorf("%w: category_id and a positive quantity are required", ErrValidation)
	}
	available, err := s.AvailableBoards(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(available) < quantity {
		return nil, &InsufficientStockError{Shortages: []StockShortage{{
			CategoryID: categoryID,
			Requested:  quantity,
			Available:  len(available),
			Reason:     fmt.Sprintf("need %d, available %d", quantity, len(available)),
		}}}
	}
	return available[:quantity], nil
}

// ApproveIssueRequest moves a pending single request to approved. The
// named board's availability is re-checked against current stock; the
// soft check at creation time guarantees nothing.
func (s *Service) ApproveIssueRequest(ctx context.Context, approver *models.User, requestID string) (*models.IssueRequest, error) {
	if !Can(approver, PermApproveIssueRequests) {
		return nil, ErrForbidden
	}
	request, err := s.store.IssueRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("looking up request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("issue request: %w", ErrNotFound)
	}
	if request.Status != models.StatusPending {
		return nil, ErrInvalidTransition
	}

	board, err := s.store.BoardBySerial(ctx, request.CategoryID, request.SerialNumber)
	if err != nil {
		return nil, fmt.Errorf("looking up board: %w", err)
	}
	if board == nil || !AvailableForIssue(board) {
		return nil, ErrBoardUnavailable
	}

	now := s.now()
	request.Status = models.StatusApproved
	request.ApprovedBy = approver.Email
	request.ApprovedDateTime = &now
	if _, err := s.store.UpdateIssueRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("updating request: %w", err)
	}
	s.notify(EventRequestApproved, request)
	return request, nil
}

// ApproveBulkRequest moves a pending bulk request to approved and
// freezes the concrete board selection into it. Auto-select entries
// take the first N available boards in ascending serial order — stable
// and deterministic, so two identical requests against identical stock
// resolve to the same boards. Any shortage rejects the whole approval.
func (s *Service) ApproveBulkRequest(ctx context.Context, approver *models.User, requestID string) (*models.BulkIssueRequest, error) {
	if !Can(approver, PermApproveIssueRequests) {
		return nil, ErrForbidden
	}
	request, err := s.store.BulkRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("looking up request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("bulk request: %w", ErrNotFound)
	}
	if request.Status != models.StatusPending {
		return nil, ErrInvalidTransition
	}

	var assignments []models.BoardAssignment
	var shortages []StockShortage
	// Boards already taken by earlier entries of the same approval must
	// not be selected twice.
	taken := make(map[string]map[string]struct{})

	for _, entry := range request.Categories {
		if taken[entry.CategoryID] == nil {
			taken[entry.CategoryID] = make(map[string]struct{})
		}
		available, err := s.AvailableBoards(ctx, entry.CategoryID)
		if err != nil {
			return nil, err
		}
		free := make([]models.Board, 0, len(available))
		for _, b := range available {
			if _, used := taken[entry.CategoryID][b.SerialNumber]; !used {
				free = append(free, b)
			}
		}

		switch entry.Mode {
		case models.BulkModeExplicit:
			freeSet := make(map[string]struct{}, len(free))
			for _, b := range free {
				freeSet[b.SerialNumber] = struct{}{}
			}
			for _, serial := range entry.SerialNumbers {
				if _, ok := freeSet[serial]; !ok {
					shortages = append(shortages, StockShortage{
						CategoryID: entry.CategoryID,
						Reason:     fmt.Sprintf("board %s is no longer available", serial),
					})
					continue
				}
				taken[entry.CategoryID][serial] = struct{}{}
				assignments = append(assignments, models.BoardAssignment{
					CategoryID:   entry.CategoryID,
					SerialNumber: serial,
				})
			}
		case models.BulkModeAuto:
			if len(free) < entry.Quantity {
				shortages = append(shortages, StockShortage{
					CategoryID: entry.CategoryID,
					Requested:  entry.Quantity,
					Available:  len(free),
					Reason:     fmt.Sprintf("need %d, available %d", entry.Quantity, len(free)),
				})
				continue
			}
			for _, b := range free[:entry.Quantity] {
				taken[entry.CategoryID][b.SerialNumber] = struct{}{}
				assignments = append(assignments, models.BoardAssignment{
					CategoryID:   entry.CategoryID,
					SerialNumber: b.SerialNumber,
				})
			}
		default:
			return nil, fmt.Errorf("%w: unknown bulk entry mode %q", ErrValidation, entry.Mode)
		}
	}

	if len(shortages) > 0 {
		return nil, &InsufficientStockError{Shortages: shortages}
	}

	now := s.now()
	request.Boards = assignments
	request.Status = models.StatusApproved
	request.ApprovedBy = approver.Email
	request.ApprovedDateTime = &now
	if _, err := s.store.UpdateBulkRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("updating bulk request: %w", err)
	}
	s.notify(EventRequestApproved, request)
	return request, nil
}

// RejectIssueRequest moves a pending single request to rejected. No
// board state is touched.
func (s *Service) RejectIssueRequest(ctx context.Context, approver *models.User, requestID string) (*models.IssueRequest, error) {
	if !Can(approver, PermApproveIssueRequests) {
		return nil, ErrForbidden
	}
	request, err := s.store.IssueRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("looking up request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("issue request: %w", ErrNotFound)
	}
	if request.Status != models.StatusPending {
		return nil, ErrInvalidTransition
	}

	request.Status = models.StatusRejected
	if _, err := s.store.UpdateIssueRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("updating request: %w", err)
	}
	s.notify(EventRequestRejected, request)
	return request, nil
}

// RejectBulkRequest moves a pending bulk request to rejected.
func (s *Service) RejectBulkRequest(ctx context.Context, approver *models.User, requestID string) (*models.BulkIssueRequest, error) {
	if !Can(approver, PermApproveIssueRequests) {
		return nil, ErrForbidden
	}
	request, err := s.store.BulkRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("looking up request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("bulk request: %w", ErrNotFound)
	}
	if request.Status != models.StatusPending {
		return nil, ErrInvalidTransition
	}

	request.Status = models.StatusRejected
	if _, err := s.store.UpdateBulkRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("updating bulk request: %w", err)
	}
	s.notify(EventRequestRejected, request)
	return request, nil
}

// DeleteIssueRequest hard-deletes a request in any state. Board state is
// never reversed: boards are only mutated at issuance, so there is
// nothing to release.
func (s *Service) DeleteIssueRequest(ctx context.Context, actor *models.User, requestID string) error {
	if !Can(actor, PermApproveIssueRequests) {
		return ErrForbidden
	}
	ok, err := s.store.DeleteIssueRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("deleting request: %w", err)
	}
	if !ok {
		return fmt.Errorf("issue request: %w", ErrNotFound)
	}
	return nil
}

// DeleteBulkRequest hard-deletes a bulk request in any state.
func (s *Service) DeleteBulkRequest(ctx context.Context, actor *models.User, requestID string) error {
	if !Can(actor, PermApproveIssueRequests) {
		return ErrForbidden
	}
	ok, err := s.store.DeleteBulkRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("deleting bulk request: %w", err)
	}
	if !ok {
		return fmt.Errorf("bulk request: %w", ErrNotFound)
	}
	return nil
}

// ListIssueRequests returns single requests visible to the actor —
// everyone's for admins, their own otherwise — with display names
// resolved.
func (s *Service) ListIssueRequests(ctx context.Context, actor *models.User, status string) ([]models.IssueRequest, error) {
	filter := RequestFilter{Status: status}
	if actor.Role != models.RoleAdmin {
		filter.RequestedBy = actor.Email
	}
	requests, err := s.store.ListIssueRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].RequestedByName = names.lookup(requests[i].RequestedBy)
		requests[i].IssuedToName = names.lookup(requests[i].IssuedTo)
	}
	return requests, nil
}

// ListBulkRequests returns bulk requests visible to the actor, with
// display names resolved.
func (s *Service) ListBulkRequests(ctx context.Context, actor *models.User, status string) ([]models.BulkIssueRequest, error) {
	filter := RequestFilter{Status: status}
	if actor.Role != models.RoleAdmin {
		filter.RequestedBy = actor.Email
	}
	requests, err := s.store.ListBulkRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing bulk requests: %w", err)
	}

	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].RequestedByName = names.lookup(requests[i].RequestedBy)
		requests[i].IssuedToName = names.lookup(requests[i].IssuedTo)
	}
	return requests, nil
}

type nameMap map[string]string

func (m nameMap) lookup(email string) string {
	if email == "" {
		return ""
	}
	if name, ok := m[email]; ok {
		return name
	}
	return email
}

func (s *Service) userNames(ctx context.Context) (nameMap, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	names := make(nameMap, len(users))
	for i := range users {
		names[users[i].Email] = users[i].FullName()
	}
	return names, nil
}
