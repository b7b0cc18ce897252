package inventory

import (
	"context"
	"time"

	"board-inventory-api-server/internal/models"
)

// Issuance is the set of fields stamped onto a board when it leaves
// stock.
type Issuance struct {
	IssuedTo      string
	IssuedBy      string
	ProjectNumber string
	Comments      string
	At            time.Time
}

// RequestFilter narrows request listings. Zero values mean "any".
type RequestFilter struct {
	Status      string
	RequestedBy string
	CategoryID  string
}

// Store is the persistence boundary the engine works against. Lookups
// return (nil, nil) when the entity does not exist; mutations by id
// report whether a document matched.
//
// IssueBoard is the one conditional write: it applies the issuance only
// if the board still satisfies the availability predicate (the extended
// direct-issue variant when extended is true) and reports whether it
// did. Availability checks and the mutation that depends on them go
// through it as a single unit, so concurrent issuers cannot both take
// the same board.
type Store interface {
	InsertCategory(ctx context.Context, c *models.Category) error
	CategoryByID(ctx context.Context, id string) (*models.Category, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) (bool, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	InsertBoard(ctx context.Context, b *models.Board) error
	BoardByID(ctx context.Context, id string) (*models.Board, error)
	BoardBySerial(ctx context.Context, categoryID, serialNumber string) (*models.Board, error)
	BoardsByCategory(ctx context.Context, categoryID string) ([]models.Board, error)
	ListBoards(ctx context.Context, filter models.BoardFilter) ([]models.Board, error)
	UpdateBoard(ctx context.Context, id string, patch models.BoardPatch) (bool, error)
	IssueBoard(ctx context.Context, id string, iss Issuance, extended bool) (bool, error)
	DeleteBoard(ctx context.Context, id string) (bool, error)

	InsertIssueRequest(ctx context.Context, r *models.IssueRequest) error
	IssueRequestByID(ctx context.Context, id string) (*models.IssueRequest, error)
	ListIssueRequests(ctx context.Context, filter RequestFilter) ([]models.IssueRequest, error)
	UpdateIssueRequest(ctx context.Context, r *models.IssueRequest) (bool, error)
	DeleteIssueRequest(ctx context.Context, id string) (bool, error)

	InsertBulkRequest(ctx context.Context, r *models.BulkIssueRequest) error
	BulkRequestByID(ctx context.Context, id string) (*models.BulkIssueRequest, error)
	ListBulkRequests(ctx context.Context, filter RequestFilter) ([]models.BulkIssueRequest, error)
	UpdateBulkRequest(ctx context.Context, r *models.BulkIssueRequest) (bool, error)
	DeleteBulkRequest(ctx context.Context, id string) (bool, error)

	InsertUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (bool, error)
	SetUserPassword(ctx context.Context, id, passwordHash string) (bool, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}
