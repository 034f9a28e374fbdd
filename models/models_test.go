package models

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []string{"TODO", "IN_PROGRESS", "PAUSED", "FINISHED"} {
		if _, err := ParseTaskStatus(s); err != nil {
			t.Fatalf("%s: unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "todo", "DELETED", "DONE"} {
		_, err := ParseTaskStatus(s)
		if !errors.Is(err, ErrBadRequest) {
			t.Fatalf("%q: expected bad request, got %v", s, err)
		}
	}
}

func TestCreateTaskInputValidate(t *testing.T) {
	high := "HIGH"
	bad := "SOMEDAY"
	due := "2026-06-01T10:00:00Z"
	zero := int64(0)

	task, err := (&CreateTaskInput{Title: "  Design ", ProjectID: 1}).Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "Design" || task.Priority != PriorityMedium || task.DueDate != nil {
		t.Fatalf("unexpected defaults: %+v", task)
	}

	task, err = (&CreateTaskInput{Title: "x", ProjectID: 1, Priority: &high, DueDate: &due}).Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Priority != PriorityHigh || task.DueDate == nil || task.DueDate.Hour() != 10 {
		t.Fatalf("unexpected task: %+v", task)
	}

	invalid := []CreateTaskInput{
		{Title: "", ProjectID: 1},
		{Title: "x"},
		{Title: "x", ProjectID: 1, Priority: &bad},
		{Title: "x", ProjectID: 1, DueDate: &bad},
		{Title: "x", ProjectID: 1, UserID: &zero},
	}
	for _, in := range invalid {
		if _, err := in.Validate(); !errors.Is(err, ErrBadRequest) {
			t.Fatalf("%+v: expected bad request, got %v", in, err)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	err := NotFoundf("Task with id %d not found", 3)
	if KindOf(err) != ErrNotFound {
		t.Fatalf("expected NotFound kind, got %v", KindOf(err))
	}
	if err.Error() != "Task with id 3 not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if KindOf(errors.New("driver failure")) != nil {
		t.Fatalf("expected no kind for plain errors")
	}
}

func TestRegisterInputNormalizes(t *testing.T) {
	in := RegisterInput{Email: " alice@example.com ", Password: "secret1", Name: " Alice ", Role: RoleManager}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Email != "alice@example.com" || in.Name != "Alice" {
		t.Fatalf("expected trimmed fields, got %+v", in)
	}
	bad := RegisterInput{Email: "Alice <alice@example.com>", Password: "secret1", Name: "A", Role: RoleUser}
	if err := bad.Validate(); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected display-name address to be rejected, got %v", err)
	}
}

func TestPasswordLengthLimit(t *testing.T) {
	at := RegisterInput{Email: "a@example.com", Password: strings.Repeat("x", 72), Name: "A", Role: RoleUser}
	if err := at.Validate(); err != nil {
		t.Fatalf("expected 72 byte password to be accepted, got %v", err)
	}
	over := RegisterInput{Email: "a@example.com", Password: strings.Repeat("x", 73), Name: "A", Role: RoleUser}
	if err := over.Validate(); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
	change := ChangePasswordInput{CurrentPassword: "secret1", NewPassword: strings.Repeat("é", 37)}
	if err := change.Validate(); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected 74 byte password to be rejected, got %v", err)
	}
}
