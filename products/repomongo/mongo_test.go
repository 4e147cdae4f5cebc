package productrepomongo

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront-api/internal/utils"
	"github.com/jrsteele09/go-storefront-api/products"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func newOfflineRepo(t *testing.T) *MongoProductRepo {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return NewMongoProductRepo(client.Database("storefront_test"))
}

func TestMalformedIDsAreRejected(t *testing.T) {
	repo := newOfflineRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "zz")
	require.ErrorIs(t, err, products.InvalidIDErr)
	_, err = repo.Update(ctx, "zz", products.ProductUpdate{Name: utils.Ptr("x")}, time.Now())
	require.ErrorIs(t, err, products.InvalidIDErr)
	_, err = repo.Delete(ctx, "zz")
	require.ErrorIs(t, err, products.InvalidIDErr)
}

func TestSetFieldsOnlyIncludesSupplied(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	set := setFields(products.ProductUpdate{Price: utils.Ptr(9.5)}, at)
	require.Equal(t, bson.D{
		{Key: "updatedAt", Value: at},
		{Key: "price", Value: 9.5},
	}, set)

	set = setFields(products.ProductUpdate{Name: utils.Ptr("n"), Description: utils.Ptr("d"), UpdatedBy: utils.Ptr("u")}, at)
	require.Len(t, set, 4)
}

func TestProductDocumentConversion(t *testing.T) {
	p := &products.Product{Name: "Mate", Description: "Yerba", Price: 12.5, CreatedBy: "s"}
	doc := toDocument(p)
	doc.ID = bson.NewObjectID()

	back := doc.toProduct()
	require.Equal(t, doc.ID.Hex(), back.ID)
	require.Equal(t, p.Price, back.Price)
	require.Equal(t, p.Name, back.Name)
}
