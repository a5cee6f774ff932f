package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/repos"
	"github.com/eduvision/eduvision-backend/internal/repos/testutil"
	"github.com/eduvision/eduvision-backend/internal/types"
)

func TestUserRepoCreateAndLookup(t *testing.T) {
	tx := testutil.Tx(t)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := repos.NewUserRepo(tx, log)
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{{
		Email:     "ada@example.test",
		Password:  "hash",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      types.RoleStudent,
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("expected one created user with generated id, got %+v", created)
	}

	exists, err := repo.EmailExists(ctx, tx, "ada@example.test")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatal("expected email to exist")
	}

	got, err := repo.GetByEmail(ctx, tx, "ada@example.test")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != created[0].ID {
		t.Fatalf("id mismatch: got %s want %s", got.ID, created[0].ID)
	}

	got.DisabilityType = "dyslexia"
	got.LearningStyle = "visual"
	if _, err := repo.Update(ctx, tx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	byIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{got.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].DisabilityType != "dyslexia" {
		t.Fatalf("expected updated profile, got %+v", byIDs)
	}
}

func TestUserRepoListByRole(t *testing.T) {
	tx := testutil.Tx(t)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := repos.NewUserRepo(tx, log)
	ctx := context.Background()

	testutil.SeedUser(t, tx, types.RoleStudent)
	testutil.SeedUser(t, tx, types.RoleStudent)
	testutil.SeedUser(t, tx, types.RoleTeacher)

	students, err := repo.ListByRole(ctx, tx, types.RoleStudent)
	if err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	for _, s := range students {
		if s.Role != types.RoleStudent {
			t.Fatalf("non-student in result: %+v", s)
		}
	}
}
