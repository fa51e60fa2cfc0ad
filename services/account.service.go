package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"shopper-backend/auth"
	"shopper-backend/models"
	"shopper-backend/store"
)

// AccountService owns credentials and token issuance.
type AccountService struct {
	users    store.UserStore
	admins   store.AdminStore
	tokens   auth.TokenMaker
	tokenTTL time.Duration
}

// NewAccountService issues tokens valid for tokenTTL; zero means they never expire.
func NewAccountService(users store.UserStore, admins store.AdminStore, tokens auth.TokenMaker, tokenTTL time.Duration) *AccountService {
	return &AccountService{users: users, admins: admins, tokens: tokens, tokenTTL: tokenTTL}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// create validates the request and stores a new account with the given roles.
func (s *AccountService) create(ctx context.Context, req models.SignupRequest, roles []string) (*models.User, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.DisplayName()),
		Email:    email,
		Password: hashed,
		CartData: models.NewCartData(),
		Roles:    roles,
		IsActive: true,
		Date:     time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AccountService) issue(user *models.User) (string, error) {
	return s.tokens.Issue(user.ID.Hex(), user.Roles, s.tokenTTL)
}

// Signup creates a customer account and returns a token for it.
func (s *AccountService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	user, err := s.create(ctx, req, []string{models.RoleUser})
	if err != nil {
		return "", err
	}
	return s.issue(user)
}

// Register creates a customer account and returns it along with a token.
func (s *AccountService) Register(ctx context.Context, req models.SignupRequest) (*models.User, string, error) {
	user, err := s.create(ctx, req, []string{models.RoleUser})
	if err != nil {
		return nil, "", err
	}
	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials of a user. When no user has the email, the
// deprecated admins collection is consulted; a match there yields an admin
// token whose subject is the admin document id.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.UserSummary, string, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return s.legacyAdminLogin(ctx, email, req.Password)
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	summary := user.Summary()
	return &summary, token, nil
}

func (s *AccountService) legacyAdminLogin(ctx context.Context, email, password string) (*models.UserSummary, string, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		auth.BurnPasswordCheck(password)
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("find admin: %w", err)
	}
	if !auth.CheckPassword(admin.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	log.Printf("Deprecated admin login for %s; move this account to a user with the admin role", admin.ID.Hex())
	roles := []string{models.RoleAdmin}
	token, err := s.tokens.Issue(admin.ID.Hex(), roles, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &models.UserSummary{
		ID:        admin.ID,
		Email:     admin.Email,
		Roles:     roles,
		IsActive:  true,
		CreatedAt: admin.Date,
	}, token, nil
}

// VerifyToken checks a raw token and returns its claims.
func (s *AccountService) VerifyToken(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EnsureAdmin makes sure an account with the admin role exists for email.
// An existing account keeps its password and gains the role.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.HasRole(models.RoleAdmin) {
			return nil
		}
		roles := append(slices.Clone(existing.Roles), models.RoleAdmin)
		if _, err := s.users.SetRoles(ctx, existing.ID, roles); err != nil {
			return fmt.Errorf("grant admin role: %w", err)
		}
		log.Printf("Granted admin role to %s", email)
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("find admin user: %w", err)
	}

	_, err = s.create(ctx, models.SignupRequest{Name: "Administrator", Email: email, Password: password},
		[]string{models.RoleUser, models.RoleAdmin})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("Created admin account %s", email)
	return nil
}
