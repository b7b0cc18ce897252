package inventory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"board-inventory-api-server/internal/models"

	"github.com/google/uuid"
)

// Notifier receives workflow events (request created/approved/rejected/
// issued) for fan-out to connected clients. Implementations must not
// block.
type Notifier interface {
	RequestEvent(event string, payload interface{})
}

// Service is the board lifecycle and issue-request workflow engine. It
// validates every mutating decision against the authoritative store at
// the moment of mutation; it never trusts a caller-held snapshot.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// NewService creates the engine on top of a store. notifier may be nil.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

func (s *Service) notify(event string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.RequestEvent(event, payload)
	}
}

// NewBoard is the input for the new-board inward path.
type NewBoard struct {
	CategoryID   string
	SerialNumber string
	Condition    string
	QCBy         string
	Comments     string
}

// InwardBoard admits a new board into stock. The location is always
// "In stock" on this path regardless of what the caller asked for.
func (s *Service) InwardBoard(ctx context.Context, actor *models.User, in NewBoard) (*models.Board, error) {
	if in.CategoryID == "" || in.SerialNumber == "" {
		return nil, fmt.Errorf("%w: category_id and serial_number are required", ErrValidation)
	}
	category, err := s.store.CategoryByID(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	existing, err := s.store.BoardBySerial(ctx, in.CategoryID, in.SerialNumber)
	if err != nil {
		return nil, fmt.Errorf("checking serial number: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateSerialError{CategoryID: in.CategoryID, SerialNumber: in.SerialNumber}
	}

	condition := in.Condition
	if condition == "" {
		condition = models.ConditionNew
	}
	now := s.now()
	board := &models.Board{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		SerialNumber:   in.SerialNumber,
		Condition:      condition,
		Location:       models.LocationInStock,
		QCBy:           in.QCBy,
		Comments:       in.Comments,
		InwardDateTime: now,
		CreatedAt:      now,
		CreatedBy:      actor.Email,
	}
	if err := s.store.InsertBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("inserting board: %w", err)
	}
	return board, nil
}

// InwardRange admits a contiguous serial range of new boards. The whole
// range is validated before anything is created; at most MaxBulkInward
// boards per call.
func (s *Service) InwardRange(ctx context.Context, actor *models.User, categoryID, startSerial, endSerial, qcBy, comments string) ([]models.Board, error) {
	if err := s.ValidateSerialRange(ctx, categoryID, startSerial, endSerial); err != nil {
		return nil, err
	}
	start, _ := strconv.Atoi(startSerial)
	end, _ := strconv.Atoi(endSerial)

	boards := make([]models.Board, 0, end-start+1)
	for n := start; n <= end; n++ {
		board, err := s.InwardBoard(ctx, actor, NewBoard{
			CategoryID:   categoryID,
			SerialNumber: formatSerial(n),
			Condition:    models.ConditionNew,
			QCBy:         qcBy,
			Comments:     comments,
		})
		if err != nil {
			return boards, err
		}
		boards = append(boards, *board)
	}
	return boards, nil
}

// InwardRepair transitions an existing board into the repair workflow.
func (s *Service) InwardRepair(ctx context.Context, actor *models.User, categoryID, serialNumber string) (*models.Board, error) {
	board, err := s.store.BoardBySerial(ctx, categoryID, serialNumber)
	if err != nil {
		return nil, fmt.Errorf("looking up board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}

	location := models.LocationRepairing
	condition := models.ConditionRepairing
	ok, err := s.store.UpdateBoard(ctx, board.ID, models.BoardPatch{
		Location:  &location,
		Condition: &condition,
	})
	if err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	return s.store.BoardByID(ctx, board.ID)
}

// UpdateBoard applies a partial update. Category and serial number are
// not part of the patch type, so they cannot change here.
func (s *Service) UpdateBoard(ctx context.Context, actor *models.User, id string, patch models.BoardPatch) (*models.Board, error) {
	// Moving a board out of stock through a plain edit still counts as
	// an issuance for the audit fields.
	if patch.Location != nil && *patch.Location != models.LocationInStock {
		issuedBy := actor.Email
		patch.IssuedBy = &issuedBy
	}
	ok, err := s.store.UpdateBoard(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	return s.store.BoardByID(ctx, id)
}

// DeleteBoard removes a board. Prior request references by serial are
// left as-is.
func (s *Service) DeleteBoard(ctx context.Context, id string) error {
	ok, err := s.store.DeleteBoard(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	if !ok {
		return fmt.Errorf("board: %w", ErrNotFound)
	}
	return nil
}

// SearchBoards lists boards matching the filter.
func (s *Service) SearchBoards(ctx context.Context, filter models.BoardFilter) ([]models.Board, error) {
	return s.store.ListBoards(ctx, filter)
}

// AvailableBoards returns the boards of a category that satisfy the
// availability predicate, in ascending serial order. The result is a
// pure function of the current store state.
func (s *Service) AvailableBoards(ctx context.Context, categoryID string) ([]models.Board, error) {
	boards, err := s.store.BoardsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing category boards: %w", err)
	}
	available := make([]models.Board, 0, len(boards))
	for _, b := range boards {
		if AvailableForIssue(&b) {
			available = append(available, b)
		}
	}
	sortBySerial(available)
	return available, nil
}
