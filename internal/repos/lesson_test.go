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

func TestLessonRepoLifecycle(t *testing.T) {
	tx := testutil.Tx(t)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := repos.NewLessonRepo(tx, log)
	ctx := context.Background()

	teacher := testutil.SeedUser(t, tx, types.RoleTeacher)
	lesson := testutil.SeedLesson(t, tx, teacher.ID, true)

	byTeacher, err := repo.ListByTeacher(ctx, tx, teacher.ID)
	if err != nil {
		t.Fatalf("list by teacher: %v", err)
	}
	if len(byTeacher) != 1 || byTeacher[0].ID != lesson.ID {
		t.Fatalf("expected the seeded lesson, got %+v", byTeacher)
	}

	if err := repo.Delete(ctx, tx, lesson.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	after, err := repo.GetByIDs(ctx, tx, []uuid.UUID{lesson.ID})
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("expected soft-deleted lesson to be invisible, got %+v", after)
	}
}

func TestAssignmentRepoUpsertIsIdempotent(t *testing.T) {
	tx := testutil.Tx(t)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := repos.NewAssignmentRepo(tx, log)
	ctx := context.Background()

	teacher := testutil.SeedUser(t, tx, types.RoleTeacher)
	student := testutil.SeedUser(t, tx, types.RoleStudent)
	lesson := testutil.SeedLesson(t, tx, teacher.ID, false)

	mk := func() *types.Assignment {
		return &types.Assignment{
			LessonID:   lesson.ID,
			StudentID:  student.ID,
			AssignedBy: teacher.ID,
			Status:     types.AssignmentStatusAssigned,
		}
	}
	if _, err := repo.Upsert(ctx, tx, []*types.Assignment{mk()}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, tx, []*types.Assignment{mk()}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := repo.GetByStudent(ctx, tx, student.ID)
	if err != nil {
		t.Fatalf("get by student: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single assignment row, got %d", len(rows))
	}
}
