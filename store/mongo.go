package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopper-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCounter = "products"

// NewMongo builds a Store backed by the collections of db.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Products: &mongoProducts{
			coll:     db.Collection("products"),
			counters: db.Collection("counters"),
		},
		Users:  &mongoUsers{coll: db.Collection("users")},
		Admins: &mongoAdmins{coll: db.Collection("admins")},
		Orders: &mongoOrders{coll: db.Collection("orders")},
	}
}

// InitMongo creates the indexes the store relies on and seeds the product
// id counter from the highest id already stored.
func InitMongo(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		"users":    {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		"admins":   {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		"products": {{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		"orders": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "orderDate", Value: -1}}},
			{Keys: bson.D{{Key: "orderDate", Value: -1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}

	var last models.Product
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.M{"id": 1})
	err := db.Collection("products").FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("read max product id: %w", err)
	}

	_, err = db.Collection("counters").UpdateOne(ctx,
		bson.M{"_id": productCounter},
		bson.M{"$max": bson.M{"seq": last.ID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed product counter: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

type mongoProducts struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func (s *mongoProducts) NextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productCounter},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next product id: %w", err)
	}
	return counter.Seq, nil
}

func (s *mongoProducts) Insert(ctx context.Context, p *models.Product) error {
	if p.Key.IsZero() {
		p.Key = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *mongoProducts) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if f.Gender != "" {
		filter["gender"] = f.Gender
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if f.Newest {
		opts.SetSort(bson.D{{Key: "id", Value: -1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *mongoProducts) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *mongoProducts) FindByKey(ctx context.Context, key primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *mongoProducts) FindByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *mongoProducts) DeleteByID(ctx context.Context, id int) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (s *mongoProducts) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *mongoProducts) InventoryValue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"total": bson.M{"$sum": bson.M{"$multiply": bson.A{
				"$new_price",
				bson.M{"$ifNull": bson.A{"$stock", 0}},
			}}},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate inventory value: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode inventory value: %w", err)
		}
	}
	return result.Total, cursor.Err()
}

type mongoUsers struct {
	coll *mongo.Collection
}

func cartKey(productID int) string {
	return fmt.Sprintf("cartData.%d", productID)
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetProjection(bson.M{"password": 0, "cartData": 0})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *mongoUsers) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *mongoUsers) update(ctx context.Context, filter, update bson.M) error {
	result, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) AddToCart(ctx context.Context, id primitive.ObjectID, productID, delta int) error {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{cartKey(productID): delta}})
}

func (s *mongoUsers) DecrementCart(ctx context.Context, id primitive.ObjectID, productID int) error {
	// Matching nothing means the slot was already empty.
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, cartKey(productID): bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{cartKey(productID): -1}},
	)
	if err != nil {
		return fmt.Errorf("decrement cart: %w", err)
	}
	return nil
}

func (s *mongoUsers) SetCartQuantity(ctx context.Context, id primitive.ObjectID, productID, qty int) error {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{cartKey(productID): qty}})
}

func (s *mongoUsers) ResetCart(ctx context.Context, id primitive.ObjectID) error {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"cartData": models.NewCartData()}})
}

func (s *mongoUsers) SetDiscount(ctx context.Context, id primitive.ObjectID, percent float64) error {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"discount": percent}})
}

func (s *mongoUsers) SetRoles(ctx context.Context, id primitive.ObjectID, roles []string) (*models.User, error) {
	var u models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"roles": roles}}, opts).Decode(&u)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *mongoUsers) ToggleActive(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	// Documents written before isActive existed count as active.
	flip := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "isActive", Value: bson.D{
			{Key: "$not", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$isActive", true}}}}},
		}}}}},
	}
	var u models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, flip, opts).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

type mongoAdmins struct {
	coll *mongo.Collection
}

func (s *mongoAdmins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *mongoAdmins) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

type mongoOrders struct {
	coll *mongo.Collection
}

func (s *mongoOrders) Insert(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *mongoOrders) FindForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := s.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s *mongoOrders) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *mongoOrders) ListWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "orderDate", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "user.password", Value: 0},
			{Key: "user.cartData", Value: 0},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.OrderWithUser{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *mongoOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	var o models.Order
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s *mongoOrders) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
