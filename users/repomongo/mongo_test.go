package userrepomongo

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront-api/users"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// newOfflineRepo builds a repo over a client that never dials; only paths that
// return before touching the server are exercised.
func newOfflineRepo(t *testing.T) *MongoUserRepo {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return NewMongoUserRepo(client.Database("storefront_test"))
}

func TestMalformedIDsAreRejected(t *testing.T) {
	repo := newOfflineRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "abc")
	require.ErrorIs(t, err, users.InvalidIDErr)

	err = repo.Update(ctx, &users.User{ID: "abc"})
	require.ErrorIs(t, err, users.InvalidIDErr)

	err = repo.Delete(ctx, "abc")
	require.ErrorIs(t, err, users.InvalidIDErr)
}

func TestDocumentConversion(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := &users.User{
		Username:     "ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
		Role:         users.RoleSeller,
		CreatedBy:    "system",
		UpdatedBy:    "system",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	doc := toDocument(u)
	doc.ID = bson.NewObjectID()

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, "hash", bson.Raw(raw).Lookup("passwordHash").StringValue())

	back := doc.toUser()
	require.Equal(t, doc.ID.Hex(), back.ID)
	require.Equal(t, users.RoleSeller, back.Role)
	require.Equal(t, u.Email, back.Email)
	require.Equal(t, now, back.CreatedAt)
}
