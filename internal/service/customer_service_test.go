package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"
)

func validInput() CustomerInput {
	return CustomerInput{Email: "ann@gage.io", FullName: "Ann", Role: "operator", Plant: "P-01", Password: "pw"}
}

func TestCustomerService_Create(t *testing.T) {
	repo := &mockCustomerRepo{}
	svc := NewCustomerService(repo)
	fixed := time.Date(2025, 5, 5, 10, 30, 15, 999, time.UTC)
	svc.now = func() time.Time { return fixed }

	c, err := svc.Create(context.Background(), adminActor, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.created))
	}
	stored := repo.created[0]
	if stored.ID == "" || stored.ID != c.ID {
		t.Fatalf("id not generated/propagated: %+v", stored)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "pw" {
		t.Fatalf("password not hashed: %q", stored.PasswordHash)
	}
	if err := verifyPassword(stored.PasswordHash, "pw"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if !stored.CreatedAt.Equal(fixed.Truncate(time.Second)) {
		t.Fatalf("created_at = %v", stored.CreatedAt)
	}
}

func TestCustomerService_CreateRejections(t *testing.T) {
	existing := &models.Customer{Email: "ann@gage.io"}

	cases := []struct {
		name    string
		actor   models.Session
		repo    *mockCustomerRepo
		input   CustomerInput
		wantErr error
	}{
		{"non-admin", operatorActor, &mockCustomerRepo{}, validInput(), ErrForbidden},
		{"duplicate", adminActor, &mockCustomerRepo{GetByEmailFn: func(string) (*models.Customer, error) { return existing, nil }}, validInput(), ErrCustomerExists},
		{"blank password", adminActor, &mockCustomerRepo{}, func() CustomerInput { in := validInput(); in.Password = " "; return in }(), ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCustomerService(tc.repo).Create(context.Background(), tc.actor, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if len(tc.repo.created) != 0 {
				t.Fatalf("nothing should be inserted")
			}
		})
	}
}

func TestCustomerService_Bootstrap(t *testing.T) {
	repo := &mockCustomerRepo{}
	in := validInput()
	in.Role = models.RoleAdmin
	if _, err := NewCustomerService(repo).Bootstrap(context.Background(), in); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if len(repo.created) != 1 || repo.created[0].Role != models.RoleAdmin {
		t.Fatalf("unexpected inserts: %+v", repo.created)
	}
}

func TestCustomerService_Get(t *testing.T) {
	other := &models.Customer{Email: "x@gage.io", Plant: "P-09"}
	repo := &mockCustomerRepo{GetByEmailFn: func(email string) (*models.Customer, error) {
		if email == "x@gage.io" {
			return other, nil
		}
		return nil, nil
	}}
	svc := NewCustomerService(repo)

	if _, err := svc.Get(context.Background(), adminActor, " X@gage.io"); err != nil {
		t.Fatalf("admin Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), operatorActor, "x@gage.io"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("operator from other plant should see not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, "ghost@gage.io"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), noPlantActor, "x@gage.io"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("session without plant should be forbidden, got %v", err)
	}
}

func TestCustomerService_ListScopesPlant(t *testing.T) {
	cases := []struct {
		name      string
		actor     models.Session
		filter    CustomerFilter
		wantPlant string
		wantLimit int
		wantErr   error
	}{
		{"admin all plants", adminActor, CustomerFilter{}, "", DefaultListLimit, nil},
		{"admin picks plant", adminActor, CustomerFilter{Plant: "P-05", Limit: 5000}, "P-05", MaxLimit, nil},
		{"operator defaults to own", operatorActor, CustomerFilter{Limit: 7}, "P-01", 7, nil},
		{"operator own explicit", operatorActor, CustomerFilter{Plant: "P-01"}, "P-01", DefaultListLimit, nil},
		{"operator other plant", operatorActor, CustomerFilter{Plant: "P-02"}, "", 0, ErrForbidden},
		{"operator without plant", noPlantActor, CustomerFilter{}, "", 0, ErrForbidden},
		{"operator without plant asks for one", noPlantActor, CustomerFilter{Plant: "P-01"}, "", 0, ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockCustomerRepo{}
			_, err := NewCustomerService(repo).List(context.Background(), tc.actor, tc.filter)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			want := repository.CustomerFilter{Plant: tc.wantPlant, Limit: tc.wantLimit}
			if repo.lastList != want {
				t.Fatalf("repo filter = %+v, want %+v", repo.lastList, want)
			}
		})
	}
}

func TestCustomerService_DeleteByRole(t *testing.T) {
	var gotRole string
	repo := &mockCustomerRepo{DeleteByRoleFn: func(role string) (int64, error) {
		gotRole = role
		return 4, nil
	}}
	svc := NewCustomerService(repo)

	n, err := svc.DeleteByRole(context.Background(), adminActor, " Viewer ")
	if err != nil || n != 4 || gotRole != "viewer" {
		t.Fatalf("DeleteByRole = %d, %v (role %q)", n, err, gotRole)
	}

	if _, err := svc.DeleteByRole(context.Background(), operatorActor, "viewer"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var missing *MissingFieldsError
	if _, err := svc.DeleteByRole(context.Background(), adminActor, ""); !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
}
