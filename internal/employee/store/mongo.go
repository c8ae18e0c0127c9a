package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roster/internal/employee/models"
	platformmongo "roster/internal/platform/mongo"
	reportmodels "roster/internal/report/models"
	"roster/pkg/platform/sentinel"
)

// MongoStore persists employees as documents. Ids are ObjectID hex strings.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongo constructs a MongoDB-backed employee store on db.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(platformmongo.EmployeesCollection)}
}

type employeeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"Name"`
	Email      string             `bson:"Email"`
	Phone      string             `bson:"Phone"`
	Address    string             `bson:"Address"`
	Department string             `bson:"Department"`
	Salary     float64            `bson:"Salary"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d employeeDocument) toModel() *models.Employee {
	return &models.Employee{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Address:    d.Address,
		Department: d.Department,
		Salary:     d.Salary,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (s *MongoStore) Create(ctx context.Context, e *models.Employee) error {
	doc := employeeDocument{
		ID:         primitive.NewObjectID(),
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Address:    e.Address,
		Department: e.Department,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	e.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*models.Employee, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	out := make([]*models.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, sentinel.ErrNotFound
	}
	var doc employeeDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) Update(ctx context.Context, e *models.Employee) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return sentinel.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "Name", Value: e.Name},
		{Key: "Email", Value: e.Email},
		{Key: "Phone", Value: e.Phone},
		{Key: "Address", Value: e.Address},
		{Key: "Department", Value: e.Department},
		{Key: "Salary", Value: e.Salary},
		{Key: "updatedAt", Value: e.UpdatedAt},
	}}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// SalaryInsights runs a single-group aggregation pipeline over the collection.
func (s *MongoStore) SalaryInsights(ctx context.Context) (reportmodels.SalaryInsights, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalEmployees", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalSalary", Value: bson.D{{Key: "$sum", Value: "$Salary"}}},
			{Key: "avgSalary", Value: bson.D{{Key: "$avg", Value: "$Salary"}}},
			{Key: "highestSalary", Value: bson.D{{Key: "$max", Value: "$Salary"}}},
			{Key: "lowestSalary", Value: bson.D{{Key: "$min", Value: "$Salary"}}},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return reportmodels.SalaryInsights{}, fmt.Errorf("aggregate salary insights: %w", err)
	}
	var rows []struct {
		TotalEmployees int     `bson:"totalEmployees"`
		TotalSalary    float64 `bson:"totalSalary"`
		AvgSalary      float64 `bson:"avgSalary"`
		HighestSalary  float64 `bson:"highestSalary"`
		LowestSalary   float64 `bson:"lowestSalary"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return reportmodels.SalaryInsights{}, fmt.Errorf("decode salary insights: %w", err)
	}
	if len(rows) == 0 {
		return reportmodels.SalaryInsights{}, nil
	}
	r := rows[0]
	return reportmodels.SalaryInsights{
		TotalEmployees: r.TotalEmployees,
		TotalSalary:    r.TotalSalary,
		AvgSalary:      r.AvgSalary,
		HighestSalary:  r.HighestSalary,
		LowestSalary:   r.LowestSalary,
	}, nil
}
