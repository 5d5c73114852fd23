package services

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrilink/backend/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

type MongoCalendarService struct {
	client    *mongo.Client
	db        *mongo.Database
	tasksColl *mongo.Collection
}

func NewMongoCalendarService(ctx context.Context, mongoURI, dbName string) (*MongoCalendarService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("calendar_tasks")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "crop", Value: 1}}},
	})

	return &MongoCalendarService{client: client, db: db, tasksColl: col}, nil
}

func (s *MongoCalendarService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// GenerateSchedule expands the crop template and replaces any previous
// schedule the user has for that crop.
func (s *MongoCalendarService) GenerateSchedule(ctx context.Context, userID, crop string, sowingDate time.Time) ([]models.CalendarTask, error) {
	tasks, err := ExpandTemplate(userID, crop, sowingDate)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(tasks))
	for i := range tasks {
		tasks[i].ID = uuid.New().String()
		tasks[i].CreatedAt = now
		docs = append(docs, tasks[i])
	}

	// Regenerating replaces the old schedule for the crop.
	if _, err := s.tasksColl.DeleteMany(ctx, bson.M{"user_id": userID, "crop": tasks[0].Crop}); err != nil {
		return nil, err
	}
	if _, err := s.tasksColl.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *MongoCalendarService) ListTasks(ctx context.Context, userID, crop string) ([]models.CalendarTask, error) {
	filter := bson.M{"user_id": userID}
	if crop != "" {
		filter["crop"] = crop
	}

	cur, err := s.tasksColl.Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.CalendarTask, 0)
	for cur.Next(ctx) {
		var t models.CalendarTask
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoCalendarService) CompleteTask(ctx context.Context, userID, taskID string) (*models.CalendarTask, error) {
	res := s.tasksColl.FindOneAndUpdate(
		ctx,
		bson.M{"_id": taskID, "user_id": userID},
		bson.M{"$set": bson.M{"completed": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var task models.CalendarTask
	if err := res.Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *MongoCalendarService) DeleteSchedule(ctx context.Context, userID, crop string) (int64, error) {
	res, err := s.tasksColl.DeleteMany(ctx, bson.M{"user_id": userID, "crop": crop})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
