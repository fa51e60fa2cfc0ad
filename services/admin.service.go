package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopper-backend/models"
	"shopper-backend/store"
)

// AdminService backs the role-gated management endpoints.
type AdminService struct {
	st *store.Store
}

// NewAdminService returns an AdminService over every collection of st.
func NewAdminService(st *store.Store) *AdminService {
	return &AdminService{st: st}
}

// ListUsers returns every account without password or cart.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.st.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

// SetRoles replaces the role set of a user.
func (s *AdminService) SetRoles(ctx context.Context, userID string, roles []string) (*models.UserSummary, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	clean := make([]string, 0, len(roles))
	for _, r := range roles {
		if !models.Roles[r] {
			return nil, validationf("invalid role %q: must be user or admin", r)
		}
		if !seen[r] {
			seen[r] = true
			clean = append(clean, r)
		}
	}

	user, err := s.st.Users.SetRoles(ctx, uid, clean)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("set roles: %w", err)
	}
	summary := user.Summary()
	return &summary, nil
}

// ToggleActive flips the active flag of a user.
func (s *AdminService) ToggleActive(ctx context.Context, userID string) (*models.UserSummary, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.st.Users.ToggleActive(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("toggle active: %w", err)
	}
	summary := user.Summary()
	return &summary, nil
}

// Stats counts the documents of each collection and values the stock.
func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	var err error
	if stats.TotalProducts, err = s.st.Products.Count(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if stats.TotalUsers, err = s.st.Users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalOrders, err = s.st.Orders.Count(ctx); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if stats.TotalAdmins, err = s.st.Admins.Count(ctx); err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if stats.TotalInventoryValue, err = s.st.Products.InventoryValue(ctx); err != nil {
		return nil, fmt.Errorf("inventory value: %w", err)
	}
	return &stats, nil
}

// ParseRoles decodes the roles field of a request body, which must be a
// JSON list of strings.
func ParseRoles(raw json.RawMessage) ([]string, error) {
	var roles []string
	if len(raw) == 0 || raw[0] != '[' || json.Unmarshal(raw, &roles) != nil {
		return nil, validationf("roles must be a list")
	}
	return roles, nil
}
