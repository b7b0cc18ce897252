package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

// MongoStore implements inventory.Store on MongoDB collections.
type MongoStore struct {
	categories *mongo.Collection
	boards     *mongo.Collection
	requests   *mongo.Collection
	bulks      *mongo.Collection
	users      *mongo.Collection
}

// NewMongoStore wires the store to its collections and ensures the
// unique (category_id, serial_number) index on boards. The engine
// checks for duplicates before inserting, but only the index closes
// the window between concurrent inward calls.
func NewMongoStore(db *mongo.Database) (*MongoStore, error) {
	boards := db.Collection("boards")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := boards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category_id", Value: 1},
			{Key: "serial_number", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &MongoStore{
		categories: db.Collection("board_categories"),
		boards:     boards,
		requests:   db.Collection("issue_requests"),
		bulks:      db.Collection("bulk_issue_requests"),
		users:      db.Collection("users"),
	}, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Categories ---

func (m *MongoStore) InsertCategory(ctx context.Context, c *models.Category) error {
	_, err := m.categories.InsertOne(ctx, c)
	return err
}

func (m *MongoStore) CategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return findOne[models.Category](ctx, m.categories, bson.M{"id": id})
}

func (m *MongoStore) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return findOne[models.Category](ctx, m.categories, bson.M{"name": name})
}

func (m *MongoStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, m.categories, bson.M{})
}

func (m *MongoStore) UpdateCategory(ctx context.Context, c *models.Category) (bool, error) {
	res, err := m.categories.ReplaceOne(ctx, bson.M{"id": c.ID}, c)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *MongoStore) DeleteCategory(ctx context.Context, id string) (bool, error) {
	res, err := m.categories.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// --- Boards ---

func (m *MongoStore) InsertBoard(ctx context.Context, b *models.Board) error {
	_, err := m.boards.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return &inventory.DuplicateSerialError{CategoryID: b.CategoryID, SerialNumber: b.SerialNumber}
	}
	return err
}

func (m *MongoStore) BoardByID(ctx context.Context, id string) (*models.Board, error) {
	return findOne[models.Board](ctx, m.boards, bson.M{"id": id})
}

func (m *MongoStore) BoardBySerial(ctx context.Context, categoryID, serialNumber string) (*models.Board, error) {
	return findOne[models.Board](ctx, m.boards, bson.M{
		"category_id":   categoryID,
		"serial_number": serialNumber,
	})
}

func (m *MongoStore) BoardsByCategory(ctx context.Context, categoryID string) ([]models.Board, error) {
	return findAll[models.Board](ctx, m.boards, bson.M{"category_id": categoryID})
}

func (m *MongoStore) ListBoards(ctx context.Context, filter models.BoardFilter) ([]models.Board, error) {
	query := bson.M{}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	if filter.Condition != "" {
		query["condition"] = filter.Condition
	}
	if filter.SearchText != "" {
		pattern := primitive.Regex{Pattern: filter.SearchText, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"serial_number": pattern},
			bson.M{"issued_to": pattern},
			bson.M{"project_number": pattern},
			bson.M{"comments": pattern},
		}
	}
	return findAll[models.Board](ctx, m.boards, query)
}

func (m *MongoStore) UpdateBoard(ctx context.Context, id string, patch models.BoardPatch) (bool, error) {
	set := bson.M{}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Condition != nil {
		set["condition"] = *patch.Condition
	}
	if patch.IssuedBy != nil {
		set["issued_by"] = *patch.IssuedBy
	}
	if patch.IssuedTo != nil {
		set["issued_to"] = *patch.IssuedTo
	}
	if patch.QCBy != nil {
		set["qc_by"] = *patch.QCBy
	}
	if patch.ProjectNumber != nil {
		set["project_number"] = *patch.ProjectNumber
	}
	if patch.Comments != nil {
		set["comments"] = *patch.Comments
	}
	if len(set) == 0 {
		res, err := m.boards.CountDocuments(ctx, bson.M{"id": id})
		return res > 0, err
	}

	res, err := m.boards.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// IssueBoard applies the issuance with a single conditional update: the
// filter re-states the availability predicate, so a board that another
// writer already took matches nothing and the call reports false.
func (m *MongoStore) IssueBoard(ctx context.Context, id string, iss inventory.Issuance, extended bool) (bool, error) {
	available := bson.A{
		bson.M{"location": models.LocationInStock, "condition": models.ConditionNew},
		bson.M{"location": models.LocationInStock, "condition": models.ConditionRepaired},
	}
	if extended {
		available = append(available, bson.M{
			"location":  models.LocationRepairing,
			"condition": models.ConditionRepaired,
		})
	}
	filter := bson.M{"id": id, "$or": available}

	set := bson.M{
		"location":         models.LocationIssuedMachine,
		"issued_to":        iss.IssuedTo,
		"issued_by":        iss.IssuedBy,
		"project_number":   iss.ProjectNumber,
		"issued_date_time": iss.At,
	}
	if iss.Comments != "" {
		set["comments"] = iss.Comments
	}

	res, err := m.boards.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (m *MongoStore) DeleteBoard(ctx context.Context, id string) (bool, error) {
	res, err := m.boards.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// --- Issue requests ---

func requestQuery(filter inventory.RequestFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.RequestedBy != "" {
		query["requested_by"] = filter.RequestedBy
	}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	return query
}

func (m *MongoStore) InsertIssueRequest(ctx context.Context, r *models.IssueRequest) error {
	_, err := m.requests.InsertOne(ctx, r)
	return err
}

func (m *MongoStore) IssueRequestByID(ctx context.Context, id string) (*models.IssueRequest, error) {
	return findOne[models.IssueRequest](ctx, m.requests, bson.M{"id": id})
}

func (m *MongoStore) ListIssueRequests(ctx context.Context, filter inventory.RequestFilter) ([]models.IssueRequest, error) {
	return findAll[models.IssueRequest](ctx, m.requests, requestQuery(filter))
}

func (m *MongoStore) UpdateIssueRequest(ctx context.Context, r *models.IssueRequest) (bool, error) {
	res, err := m.requests.ReplaceOne(ctx, bson.M{"id": r.ID}, r)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *MongoStore) DeleteIssueRequest(ctx context.Context, id string) (bool, error) {
	res, err := m.requests.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// --- Bulk requests ---

func (m *MongoStore) InsertBulkRequest(ctx context.Context, r *models.BulkIssueRequest) error {
	_, err := m.bulks.InsertOne(ctx, r)
	return err
}

func (m *MongoStore) BulkRequestByID(ctx context.Context, id string) (*models.BulkIssueRequest, error) {
	return findOne[models.BulkIssueRequest](ctx, m.bulks, bson.M{"id": id})
}

func (m *MongoStore) ListBulkRequests(ctx context.Context, filter inventory.RequestFilter) ([]models.BulkIssueRequest, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.RequestedBy != "" {
		query["requested_by"] = filter.RequestedBy
	}
	return findAll[models.BulkIssueRequest](ctx, m.bulks, query)
}

func (m *MongoStore) UpdateBulkRequest(ctx context.Context, r *models.BulkIssueRequest) (bool, error) {
	res, err := m.bulks.ReplaceOne(ctx, bson.M{"id": r.ID}, r)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *MongoStore) DeleteBulkRequest(ctx context.Context, id string) (bool, error) {
	res, err := m.bulks.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// --- Users ---

func (m *MongoStore) InsertUser(ctx context.Context, u *models.User) error {
	_, err := m.users.InsertOne(ctx, u)
	return err
}

func (m *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, m.users, bson.M{"email": email})
}

func (m *MongoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, m.users, bson.M{"id": id})
}

func (m *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, m.users, bson.M{})
}

func (m *MongoStore) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (bool, error) {
	set := bson.M{}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Designation != nil {
		set["designation"] = *patch.Designation
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Permissions != nil {
		set["permissions"] = *patch.Permissions
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}
	if len(set) == 0 {
		res, err := m.users.CountDocuments(ctx, bson.M{"id": id})
		return res > 0, err
	}

	res, err := m.users.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *MongoStore) SetUserPassword(ctx context.Context, id, passwordHash string) (bool, error) {
	res, err := m.users.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *MongoStore) DeleteUser(ctx context.Context, id string) (bool, error) {
	res, err := m.users.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
