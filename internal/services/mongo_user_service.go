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
	"golang.org/x/crypto/bcrypt"

	"github.com/agrilink/backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

type MongoUserService struct {
	client   *mongo.Client
	db       *mongo.Database
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, mongoURI, dbName string) (*MongoUserService, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless we force TLS 1.2.
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
	col := db.Collection("users")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoUserService{client: client, db: db, usersCol: col}, nil
}

func (s *MongoUserService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	count, err := s.usersCol.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		District:     req.District,
		Crops:        req.Crops,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *MongoUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// LoadModerationState fetches the moderation subset of a user record. The
// caller runs the pure ledger/gate decision on the snapshot and saves the
// result back; the read-modify-write is not serialized, so two concurrent
// violations can under-count by one. Accepted at expected request rates.
func (s *MongoUserService) LoadModerationState(ctx context.Context, userID string) (models.ModerationState, error) {
	var user models.User
	if err := s.usersCol.FindOne(
		ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"moderation": 1}),
	).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ModerationState{}, ErrUserNotFound
		}
		return models.ModerationState{}, err
	}
	return user.Moderation, nil
}

// SaveModerationState overwrites the user's moderation subset. Must be called
// with the state returned by the ledger or gate before the outcome is reported.
func (s *MongoUserService) SaveModerationState(ctx context.Context, userID string, state models.ModerationState) error {
	res, err := s.usersCol.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"moderation": state}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
