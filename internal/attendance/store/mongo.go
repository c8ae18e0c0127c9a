package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roster/internal/attendance/models"
	platformmongo "roster/internal/platform/mongo"
	reportmodels "roster/internal/report/models"
	"roster/pkg/platform/sentinel"
)

// MongoStore persists attendance marks as documents. The unique index on
// {employeeId, date} backs the upsert.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongo constructs a MongoDB-backed attendance store on db.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(platformmongo.AttendanceCollection)}
}

type recordDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `bson:"employeeId"`
	Date       time.Time          `bson:"date"`
	Status     string             `bson:"status"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d recordDocument) toModel() *models.Record {
	return &models.Record{
		ID:         d.ID.Hex(),
		EmployeeID: d.EmployeeID.Hex(),
		Date:       models.DayFromStored(d.Date.UTC()),
		Status:     models.Status(d.Status),
		UpdatedAt:  d.UpdatedAt,
	}
}

func (s *MongoStore) Upsert(ctx context.Context, r *models.Record) (*models.Record, error) {
	employeeID, err := primitive.ObjectIDFromHex(r.EmployeeID)
	if err != nil {
		return nil, sentinel.ErrNotFound
	}
	filter := bson.D{
		{Key: "employeeId", Value: employeeID},
		{Key: "date", Value: r.Date.Time()},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(r.Status)},
		{Key: "updatedAt", Value: r.UpdatedAt},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc recordDocument
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		// Two concurrent first marks can both miss the filter; the loser retries
		// against the row the winner inserted.
		if mongo.IsDuplicateKeyError(err) {
			if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
				return nil, fmt.Errorf("upsert attendance: %w", err)
			}
			return doc.toModel(), nil
		}
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) List(ctx context.Context) ([]*models.Record, error) {
	return s.find(ctx, bson.D{}, bson.D{{Key: "_id", Value: 1}})
}

func (s *MongoStore) ListByEmployee(ctx context.Context, employeeID string) ([]*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, nil
	}
	return s.find(ctx, bson.D{{Key: "employeeId", Value: oid}}, bson.D{{Key: "date", Value: 1}})
}

func (s *MongoStore) DeleteByEmployee(ctx context.Context, employeeID string) error {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil
	}
	if _, err := s.coll.DeleteMany(ctx, bson.D{{Key: "employeeId", Value: oid}}); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

// AttendanceSummary groups marks per employee in the database, ordered by each
// employee's first mark.
func (s *MongoStore) AttendanceSummary(ctx context.Context) ([]reportmodels.AttendanceSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$employeeId"},
			{Key: "first", Value: bson.D{{Key: "$min", Value: "$_id"}}},
			{Key: "totalDays", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "presentDays", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$status", string(models.StatusPresent)}}},
					1,
					0,
				}},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first", Value: 1}}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate attendance summary: %w", err)
	}
	var rows []struct {
		EmployeeID  primitive.ObjectID `bson:"_id"`
		TotalDays   int                `bson:"totalDays"`
		PresentDays int                `bson:"presentDays"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode attendance summary: %w", err)
	}
	out := make([]reportmodels.AttendanceSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, reportmodels.AttendanceSummary{
			EmployeeID:  r.EmployeeID.Hex(),
			TotalDays:   r.TotalDays,
			PresentDays: r.PresentDays,
			Percentage:  reportmodels.Percentage(r.PresentDays, r.TotalDays),
		})
	}
	return out, nil
}

func (s *MongoStore) find(ctx context.Context, filter, sort bson.D) ([]*models.Record, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	var docs []recordDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	out := make([]*models.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
