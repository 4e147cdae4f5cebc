package userrepomongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-storefront-api/users"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const CollectionName = "users"

var _ users.UserRepo = (*MongoUserRepo)(nil)

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	Role         string        `bson:"role"`
	CreatedBy    string        `bson:"createdBy"`
	UpdatedBy    string        `bson:"updatedBy"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email and username indexes
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) Create(ctx context.Context, user *users.User) error {
	doc := toDocument(user)
	doc.ID = bson.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return users.DuplicateUserErr
		}
		return fmt.Errorf("mongo insert user: %w", err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, users.InvalidIDErr
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoUserRepo) Update(ctx context.Context, user *users.User) error {
	oid, err := bson.ObjectIDFromHex(user.ID)
	if err != nil {
		return users.InvalidIDErr
	}

	set := bson.D{
		{Key: "username", Value: user.Username},
		{Key: "email", Value: user.Email},
		{Key: "passwordHash", Value: user.PasswordHash},
		{Key: "role", Value: string(user.Role)},
		{Key: "updatedBy", Value: user.UpdatedBy},
		{Key: "updatedAt", Value: user.UpdatedAt},
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return users.DuplicateUserErr
		}
		return fmt.Errorf("mongo update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return users.UserNotFoundErr
	}
	return nil
}

func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return users.InvalidIDErr
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("mongo delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return users.UserNotFoundErr
	}
	return nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.D) (*users.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, users.UserNotFoundErr
		}
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return doc.toUser(), nil
}

func toDocument(u *users.User) userDocument {
	return userDocument{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedBy:    u.CreatedBy,
		UpdatedBy:    u.UpdatedBy,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDocument) toUser() *users.User {
	return &users.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         users.Role(d.Role),
		CreatedBy:    d.CreatedBy,
		UpdatedBy:    d.UpdatedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
