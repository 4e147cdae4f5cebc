package productrepomongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-storefront-api/products"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const CollectionName = "products"

var _ products.ProductRepo = (*MongoProductRepo)(nil)

type productDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Price       float64       `bson:"price"`
	CreatedBy   string        `bson:"createdBy"`
	UpdatedBy   string        `bson:"updatedBy,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

type MongoProductRepo struct {
	coll *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database) *MongoProductRepo {
	return &MongoProductRepo{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the listing index on createdAt
func (r *MongoProductRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

func (r *MongoProductRepo) Create(ctx context.Context, p *products.Product) error {
	doc := toDocument(p)
	doc.ID = bson.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo insert product: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *MongoProductRepo) List(ctx context.Context) ([]*products.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find products: %w", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode products: %w", err)
	}

	list := make([]*products.Product, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toProduct())
	}
	return list, nil
}

func (r *MongoProductRepo) GetByID(ctx context.Context, id string) (*products.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, products.InvalidIDErr
	}
	return decodeOne(r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

// Update applies the supplied fields atomically and returns the updated document
func (r *MongoProductRepo) Update(ctx context.Context, id string, update products.ProductUpdate, updatedAt time.Time) (*products.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, products.InvalidIDErr
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: setFields(update, updatedAt)}}, opts)
	return decodeOne(res)
}

func (r *MongoProductRepo) Delete(ctx context.Context, id string) (*products.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, products.InvalidIDErr
	}
	return decodeOne(r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func setFields(update products.ProductUpdate, updatedAt time.Time) bson.D {
	set := bson.D{{Key: "updatedAt", Value: updatedAt}}
	if update.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *update.Name})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *update.Price})
	}
	if update.UpdatedBy != nil {
		set = append(set, bson.E{Key: "updatedBy", Value: *update.UpdatedBy})
	}
	return set
}

func decodeOne(res *mongo.SingleResult) (*products.Product, error) {
	var doc productDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, products.ProductNotFoundErr
		}
		return nil, fmt.Errorf("mongo product: %w", err)
	}
	return doc.toProduct(), nil
}

func toDocument(p *products.Product) productDocument {
	return productDocument{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDocument) toProduct() *products.Product {
	return &products.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		CreatedBy:   d.CreatedBy,
		UpdatedBy:   d.UpdatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
