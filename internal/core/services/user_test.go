package services

import (
	"context"
	"testing"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driven/mocks"
	"github.com/opiekalabs/wypadek-core/internal/core/ports/driving"
)

func newTestUserService() (*mocks.MockUserStore, *mocks.MockSessionStore, *userService) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	svc := NewUserService(userStore, sessionStore, mocks.NewMockAuthAdapter(), "office-1").(*userService)
	return userStore, sessionStore, svc
}

func TestUserService_Setup(t *testing.T) {
	_, _, svc := newTestUserService()

	req := driving.SetupRequest{Email: "admin@example.com", Password: "secret", Name: "Admin"}

	resp, err := svc.Setup(context.Background(), req)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if resp.User.Role != domain.RoleAdmin {
		t.Errorf("Role = %s, want admin", resp.User.Role)
	}
	if resp.User.OfficeID != "office-1" {
		t.Errorf("OfficeID = %s, want office-1", resp.User.OfficeID)
	}

	// Setup only works once
	if _, err := svc.Setup(context.Background(), req); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden on second setup, got %v", err)
	}
}

func TestUserService_Create(t *testing.T) {
	_, _, svc := newTestUserService()

	tests := []struct {
		name    string
		req     domain.CreateUserRequest
		wantErr error
	}{
		{
			name: "valid clerk",
			req: domain.CreateUserRequest{
				Email: "clerk@example.com", Password: "secret", Name: "Clerk", Role: domain.RoleClerk,
			},
		},
		{
			name: "missing email",
			req: domain.CreateUserRequest{
				Password: "secret", Name: "Clerk", Role: domain.RoleClerk,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing password",
			req: domain.CreateUserRequest{
				Email: "x@example.com", Name: "Clerk", Role: domain.RoleClerk,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "bad role",
			req: domain.CreateUserRequest{
				Email: "y@example.com", Password: "secret", Name: "Clerk", Role: "janitor",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "duplicate email",
			req: domain.CreateUserRequest{
				Email: "clerk@example.com", Password: "secret", Name: "Clerk", Role: domain.RoleClerk,
			},
			wantErr: domain.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.OfficeID != "office-1" {
				t.Errorf("OfficeID = %s, want office-1", user.OfficeID)
			}
			if !user.Active {
				t.Error("new users should be active")
			}
		})
	}
}

func TestUserService_Get_OtherOffice(t *testing.T) {
	userStore, _, svc := newTestUserService()

	other := &domain.User{ID: "u2", Email: "other@example.com", OfficeID: "office-2"}
	_ = userStore.Save(context.Background(), other)

	if _, err := svc.Get(context.Background(), "u2"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for foreign office user, got %v", err)
	}
}

func TestUserService_Update_DeactivateKillsSessions(t *testing.T) {
	_, sessionStore, svc := newTestUserService()

	user, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email: "clerk@example.com", Password: "secret", Name: "Clerk", Role: domain.RoleClerk,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_ = sessionStore.Save(context.Background(), &domain.Session{ID: "s1", UserID: user.ID})

	inactive := false
	if _, err := svc.Update(context.Background(), user.ID, driving.UpdateUserRequest{Active: &inactive}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := sessionStore.Get(context.Background(), "s1"); err != domain.ErrSessionNotFound {
		t.Errorf("expected sessions dropped on deactivation, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	_, sessionStore, svc := newTestUserService()

	user, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email: "clerk@example.com", Password: "secret", Name: "Clerk", Role: domain.RoleClerk,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_ = sessionStore.Save(context.Background(), &domain.Session{ID: "s1", UserID: user.ID})

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(context.Background(), user.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := sessionStore.Get(context.Background(), "s1"); err != domain.ErrSessionNotFound {
		t.Errorf("expected sessions dropped on delete, got %v", err)
	}
}
