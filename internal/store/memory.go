package store

import (
	"context"
	"strings"
	"sync"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

// MemoryStore is a mutex-guarded in-memory implementation of
// inventory.Store. It backs the engine tests; production runs on Mongo.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	boards     map[string]models.Board
	requests   map[string]models.IssueRequest
	bulks      map[string]models.BulkIssueRequest
	users      map[string]models.User
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[string]models.Category),
		boards:     make(map[string]models.Board),
		requests:   make(map[string]models.IssueRequest),
		bulks:      make(map[string]models.BulkIssueRequest),
		users:      make(map[string]models.User),
	}
}

// --- Categories ---

func (m *MemoryStore) InsertCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = *c
	return nil
}

func (m *MemoryStore) CategoryByID(_ context.Context, id string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *MemoryStore) CategoryByName(_ context.Context, name string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *MemoryStore) UpdateCategory(_ context.Context, c *models.Category) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.ID]; !ok {
		return false, nil
	}
	m.categories[c.ID] = *c
	return true, nil
}

func (m *MemoryStore) DeleteCategory(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return false, nil
	}
	delete(m.categories, id)
	return true, nil
}

// --- Boards ---

// InsertBoard rejects a (category, serial) pair that already exists,
// matching the unique index the Mongo store carries.
func (m *MemoryStore) InsertBoard(_ context.Context, b *models.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.boards {
		if existing.CategoryID == b.CategoryID && existing.SerialNumber == b.SerialNumber {
			return &inventory.DuplicateSerialError{CategoryID: b.CategoryID, SerialNumber: b.SerialNumber}
		}
	}
	m.boards[b.ID] = *b
	return nil
}

func (m *MemoryStore) BoardByID(_ context.Context, id string) (*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.boards[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *MemoryStore) BoardBySerial(_ context.Context, categoryID, serialNumber string) (*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.boards {
		if b.CategoryID == categoryID && b.SerialNumber == serialNumber {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) BoardsByCategory(_ context.Context, categoryID string) ([]models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Board{}
	for _, b := range m.boards {
		if b.CategoryID == categoryID {
			out = append(out, b)
		}
	}
	return out, nil
}

func matchesSearch(b *models.Board, text string) bool {
	needle := strings.ToLower(text)
	for _, field := range []string{b.SerialNumber, b.IssuedTo, b.ProjectNumber, b.Comments} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (m *MemoryStore) ListBoards(_ context.Context, filter models.BoardFilter) ([]models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Board{}
	for _, b := range m.boards {
		if filter.CategoryID != "" && b.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Location != "" && b.Location != filter.Location {
			continue
		}
		if filter.Condition != "" && b.Condition != filter.Condition {
			continue
		}
		if filter.SearchText != "" && !matchesSearch(&b, filter.SearchText) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *MemoryStore) UpdateBoard(_ context.Context, id string, patch models.BoardPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.boards[id]
	if !ok {
		return false, nil
	}
	if patch.Location != nil {
		b.Location = *patch.Location
	}
	if patch.Condition != nil {
		b.Condition = *patch.Condition
	}
	if patch.IssuedBy != nil {
		b.IssuedBy = *patch.IssuedBy
	}
	if patch.IssuedTo != nil {
		b.IssuedTo = *patch.IssuedTo
	}
	if patch.QCBy != nil {
		b.QCBy = *patch.QCBy
	}
	if patch.ProjectNumber != nil {
		b.ProjectNumber = *patch.ProjectNumber
	}
	if patch.Comments != nil {
		b.Comments = *patch.Comments
	}
	m.boards[id] = b
	return true, nil
}

func (m *MemoryStore) IssueBoard(_ context.Context, id string, iss inventory.Issuance, extended bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.boards[id]
	if !ok {
		return false, nil
	}
	available := inventory.AvailableForIssue(&b)
	if extended {
		available = inventory.AvailableForDirectIssue(&b)
	}
	if !available {
		return false, nil
	}
	at := iss.At
	b.Location = models.LocationIssuedMachine
	b.IssuedTo = iss.IssuedTo
	b.IssuedBy = iss.IssuedBy
	b.ProjectNumber = iss.ProjectNumber
	b.IssuedDateTime = &at
	if iss.Comments != "" {
		b.Comments = iss.Comments
	}
	m.boards[id] = b
	return true, nil
}

func (m *MemoryStore) DeleteBoard(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.boards[id]; !ok {
		return false, nil
	}
	delete(m.boards, id)
	return true, nil
}

// --- Issue requests ---

func (m *MemoryStore) InsertIssueRequest(_ context.Context, r *models.IssueRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID] = *r
	return nil
}

func (m *MemoryStore) IssueRequestByID(_ context.Context, id string) (*models.IssueRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.requests[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (m *MemoryStore) ListIssueRequests(_ context.Context, filter inventory.RequestFilter) ([]models.IssueRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.IssueRequest{}
	for _, r := range m.requests {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.RequestedBy != "" && r.RequestedBy != filter.RequestedBy {
			continue
		}
		if filter.CategoryID != "" && r.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *MemoryStore) UpdateIssueRequest(_ context.Context, r *models.IssueRequest) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[r.ID]; !ok {
		return false, nil
	}
	m.requests[r.ID] = *r
	return true, nil
}

func (m *MemoryStore) DeleteIssueRequest(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return false, nil
	}
	delete(m.requests, id)
	return true, nil
}

// --- Bulk requests ---

func (m *MemoryStore) InsertBulkRequest(_ context.Context, r *models.BulkIssueRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulks[r.ID] = *r
	return nil
}

func (m *MemoryStore) BulkRequestByID(_ context.Context, id string) (*models.BulkIssueRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.bulks[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (m *MemoryStore) ListBulkRequests(_ context.Context, filter inventory.RequestFilter) ([]models.BulkIssueRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.BulkIssueRequest{}
	for _, r := range m.bulks {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.RequestedBy != "" && r.RequestedBy != filter.RequestedBy {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *MemoryStore) UpdateBulkRequest(_ context.Context, r *models.BulkIssueRequest) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bulks[r.ID]; !ok {
		return false, nil
	}
	m.bulks[r.ID] = *r
	return true, nil
}

func (m *MemoryStore) DeleteBulkRequest(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bulks[id]; !ok {
		return false, nil
	}
	delete(m.bulks, id)
	return true, nil
}

// --- Users ---

func (m *MemoryStore) InsertUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) UserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *MemoryStore) UpdateUser(_ context.Context, id string, patch models.UserPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return false, nil
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Designation != nil {
		u.Designation = *patch.Designation
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Permissions != nil {
		u.Permissions = *patch.Permissions
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	m.users[id] = u
	return true, nil
}

func (m *MemoryStore) SetUserPassword(_ context.Context, id, passwordHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return false, nil
	}
	u.Password = passwordHash
	m.users[id] = u
	return true, nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}
