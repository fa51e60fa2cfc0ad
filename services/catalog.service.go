package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopper-backend/models"
	"shopper-backend/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService manages products.
type CatalogService struct {
	products store.ProductStore
}

// NewCatalogService returns a CatalogService over products.
func NewCatalogService(products store.ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// AddProduct validates input and stores it under the next numeric id.
func (s *CatalogService) AddProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	id, err := s.products.NextID(ctx)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Gender:      gender,
		Category:    strings.TrimSpace(in.Category),
		Subcategory: strings.TrimSpace(in.Subcategory),
		Image:       strings.TrimSpace(in.Image),
		NewPrice:    *in.NewPrice,
		OldPrice:    in.OldPrice,
		Stock:       stock,
		Colors:      ParseList(in.Colors, models.DefaultColor),
		Sizes:       ParseList(in.Sizes, models.DefaultSize),
		Date:        time.Now(),
		Available:   available,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

// ParseList normalizes a colors or sizes value. It accepts a JSON array, a
// single string, or a string holding a JSON array. Absent, empty or
// non-string values give []string{def}; a string that looks like an array
// but does not parse is kept whole.
func ParseList(raw json.RawMessage, def string) []string {
	defaults := []string{def}
	if len(raw) == 0 {
		return defaults
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		return nonEmpty(list, def)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return defaults
	}
	single = strings.TrimSpace(single)
	if single == "" {
		return defaults
	}
	if strings.HasPrefix(single, "[") {
		if err := json.Unmarshal([]byte(single), &list); err == nil {
			return nonEmpty(list, def)
		}
	}
	return []string{single}
}

func nonEmpty(values []interface{}, def string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		var s string
		switch tv := v.(type) {
		case string:
			s = strings.TrimSpace(tv)
		case float64:
			s = strconv.FormatFloat(tv, 'f', -1, 64)
		default:
			continue
		}
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{def}
	}
	return out
}

// ListProducts returns products in insertion order.
func (s *CatalogService) ListProducts(ctx context.Context, gender, category string) ([]models.Product, error) {
	return s.products.List(ctx, store.ProductFilter{
		Gender:   strings.ToLower(gender),
		Category: category,
	})
}

// NewCollection returns the eight most recently added products.
func (s *CatalogService) NewCollection(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx, store.ProductFilter{Newest: true, Limit: 8})
}

// PopularIn returns the first four products for gender.
func (s *CatalogService) PopularIn(ctx context.Context, gender string) ([]models.Product, error) {
	return s.products.List(ctx, store.ProductFilter{Gender: gender, Limit: 4})
}

// GetProduct resolves key as a numeric product id or a storage key.
func (s *CatalogService) GetProduct(ctx context.Context, key string) (*models.Product, error) {
	var (
		product *models.Product
		err     error
	)
	if id, convErr := strconv.Atoi(key); convErr == nil {
		product, err = s.products.FindByID(ctx, id)
	} else if oid, oidErr := primitive.ObjectIDFromHex(key); oidErr == nil {
		product, err = s.products.FindByKey(ctx, oid)
	} else {
		return nil, notFoundf("product not found")
	}

	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundf("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// RemoveProduct deletes by numeric id. A missing product is not an error;
// the boolean tells whether anything was deleted.
func (s *CatalogService) RemoveProduct(ctx context.Context, id int) (bool, error) {
	removed, err := s.products.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	return removed, nil
}
