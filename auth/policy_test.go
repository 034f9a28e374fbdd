package auth

import (
	"errors"
	"testing"

	"taskboard/models"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		role    models.Role
		op      Operation
		allowed bool
	}{
		{models.RoleManager, OpProjectCreate, true},
		{models.RoleUser, OpProjectCreate, false},
		{models.RoleUser, OpProjectDelete, false},
		{models.RoleUser, OpProjectList, true},
		{models.RoleUser, OpTaskCreate, true},
		{models.RoleUser, OpTaskStatus, false},
		{models.RoleUser, OpTaskPriority, false},
		{models.RoleUser, OpTaskDueDate, false},
		{models.RoleUser, OpTaskAssign, false},
		{models.RoleManager, OpTaskAssign, true},
		{models.RoleUser, OpUserList, true},
		{models.RoleManager, Operation("unknown.op"), false},
	}
	for _, c := range cases {
		err := Authorize(c.role, c.op)
		if c.allowed && err != nil {
			t.Fatalf("%s %s: expected permit, got %v", c.role, c.op, err)
		}
		if !c.allowed && !errors.Is(err, models.ErrForbidden) {
			t.Fatalf("%s %s: expected forbidden, got %v", c.role, c.op, err)
		}
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := IdentityFrom(t.Context()); ok {
		t.Fatalf("expected no identity on empty context")
	}
	ctx := WithIdentity(t.Context(), Identity{Sub: 7, Role: models.RoleUser})
	id, ok := IdentityFrom(ctx)
	if !ok || id.Sub != 7 {
		t.Fatalf("expected identity 7, got %+v (ok=%v)", id, ok)
	}
}
