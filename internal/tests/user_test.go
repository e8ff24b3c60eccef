package tests

import (
	"context"
	"testing"

	"travelex/internal/domain"
	"travelex/internal/service"
)

func TestAccess_Caller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.access.Caller(ctx, ""); err != service.ErrUnauthenticated {
		t.Errorf("empty ID: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := f.access.Caller(ctx, "ghost"); err != service.ErrUnauthenticated {
		t.Errorf("unknown ID: expected ErrUnauthenticated, got %v", err)
	}

	user, err := f.access.Caller(ctx, customerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != customerID {
		t.Errorf("expected %s, got %s", customerID, user.ID)
	}
}

func TestAccess_CanAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testCases := []struct {
		name    string
		caller  string
		owner   string
		wantErr error
	}{
		{"owner", customerID, customerID, nil},
		{"admin on foreign resource", adminID, customerID, nil},
		{"other customer", otherUserID, customerID, service.ErrForbidden},
		{"anonymous", "", customerID, service.ErrUnauthenticated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := f.access.CanAccess(ctx, tc.caller, tc.owner); err != tc.wantErr {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUser_RegisterNormalizesEmail(t *testing.T) {
	f := newFixture(t)

	user, err := f.userService.Register(context.Background(), service.RegisterRequest{
		Name:  "  Carol ",
		Email: "Carol <Carol@Example.COM>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "carol@example.com" {
		t.Errorf("expected lowercased address, got %q", user.Email)
	}
	if user.Name != "Carol" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
	if user.Role != domain.UserRoleCustomer {
		t.Errorf("expected CUSTOMER role, got %s", user.Role)
	}
}

func TestUser_RegisterValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.userService.Register(ctx, service.RegisterRequest{Name: "", Email: "x@example.com"}); err != service.ErrInvalidName {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := f.userService.Register(ctx, service.RegisterRequest{Name: "X", Email: "not-an-email"}); err != service.ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := f.userService.Register(ctx, service.RegisterRequest{Name: "Alice", Email: "ALICE@example.com"}); err != service.ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUser_ListIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.userService.List(ctx, customerID); err != service.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	users, err := f.userService.List(ctx, adminID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 users, got %d", len(users))
	}
}

func TestUser_GetOtherUserForbidden(t *testing.T) {
	f := newFixture(t)

	if _, err := f.userService.Get(context.Background(), customerID, otherUserID); err != service.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
