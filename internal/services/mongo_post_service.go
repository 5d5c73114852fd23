package services

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrilink/backend/internal/models"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrReplyNotFound = errors.New("reply not found")
	ErrUnauthorized  = errors.New("unauthorized to modify this post")
)

type MongoPostService struct {
	client      *mongo.Client
	db          *mongo.Database
	postsColl   *mongo.Collection
	repliesColl *mongo.Collection
}

type mongoPostDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Author    string    `bson:"author"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Tags      []string  `bson:"tags,omitempty"`
	UpvotedBy []string  `bson:"upvoted_by,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func NewMongoPostService(ctx context.Context, mongoURI, dbName string) (*MongoPostService, error) {
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
	posts := db.Collection("posts")
	replies := db.Collection("replies")

	svc := &MongoPostService{
		client:      client,
		db:          db,
		postsColl:   posts,
		repliesColl: replies,
	}

	// Best-effort indexes.
	_, _ = posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}}},
	})
	_, _ = replies.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})

	log.Printf("MongoDB connected: db=%s", dbName)
	return svc, nil
}

func (s *MongoPostService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func postDocToModel(d mongoPostDoc) *models.Post {
	return &models.Post{
		ID:        d.ID,
		UserID:    d.UserID,
		Author:    d.Author,
		Title:     d.Title,
		Content:   d.Content,
		Tags:      d.Tags,
		Upvotes:   len(d.UpvotedBy),
		Replies:   []models.Reply{},
		CreatedAt: d.CreatedAt,
	}
}

func (s *MongoPostService) Create(ctx context.Context, userID, author string, req *models.CreatePostRequest) (*models.Post, error) {
	doc := mongoPostDoc{
		ID:        uuid.New().String(),
		UserID:    userID,
		Author:    author,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.postsColl.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return postDocToModel(doc), nil
}

func (s *MongoPostService) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var doc mongoPostDoc
	if err := s.postsColl.FindOne(ctx, bson.M{"_id": postID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post := postDocToModel(doc)
	replies, err := s.listReplies(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Replies = replies
	return post, nil
}

// List returns recent posts, newest first, optionally filtered by tag.
func (s *MongoPostService) List(ctx context.Context, tag string, limit int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}

	cur, err := s.postsColl.Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Post, 0)
	for cur.Next(ctx) {
		var d mongoPostDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, postDocToModel(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoPostService) Delete(ctx context.Context, userID, postID string) error {
	var doc mongoPostDoc
	if err := s.postsColl.FindOne(ctx, bson.M{"_id": postID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrPostNotFound
		}
		return err
	}
	if doc.UserID != userID {
		return ErrUnauthorized
	}

	if _, err := s.postsColl.DeleteOne(ctx, bson.M{"_id": postID}); err != nil {
		return err
	}
	// Replies go with the post.
	if _, err := s.repliesColl.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		log.Printf("[posts] failed to delete replies for post=%s: %v", postID, err)
	}
	return nil
}

// Upvote records one vote per user via $addToSet and returns the new total.
func (s *MongoPostService) Upvote(ctx context.Context, userID, postID string) (int, error) {
	res := s.postsColl.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"upvoted_by": userID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated mongoPostDoc
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return len(updated.UpvotedBy), nil
}

func (s *MongoPostService) AddReply(ctx context.Context, userID, author, postID string, req *models.CreateReplyRequest) (*models.Reply, error) {
	count, err := s.postsColl.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	reply := models.Reply{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Author:    author,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.repliesColl.InsertOne(ctx, reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (s *MongoPostService) DeleteReply(ctx context.Context, userID, postID, replyID string) error {
	var reply models.Reply
	if err := s.repliesColl.FindOne(ctx, bson.M{"_id": replyID, "post_id": postID}).Decode(&reply); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrReplyNotFound
		}
		return err
	}
	if reply.UserID != userID {
		return ErrUnauthorized
	}

	_, err := s.repliesColl.DeleteOne(ctx, bson.M{"_id": replyID})
	return err
}

func (s *MongoPostService) listReplies(ctx context.Context, postID string) ([]models.Reply, error) {
	cur, err := s.repliesColl.Find(
		ctx,
		bson.M{"post_id": postID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Reply, 0)
	for cur.Next(ctx) {
		var r models.Reply
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
