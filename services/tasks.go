package services

import (
	"context"
	"time"

	"taskboard/models"
)

// TaskService owns the task lifecycle. Any status may follow any other;
// every change is validated before the store is touched.
type TaskService struct {
	tasks    TaskStore
	projects ProjectStore
	users    UserStore
	history  history
}

func NewTaskService(tasks TaskStore, projects ProjectStore, users UserStore, recorder ActivityRecorder) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, history: newHistory(recorder)}
}

// Create stores a new TODO task under an existing project.
func (s *TaskService) Create(ctx context.Context, actorID int64, in models.CreateTaskInput) (models.Task, error) {
	newTask, err := in.Validate()
	if err != nil {
		return models.Task{}, err
	}

	if _, err := s.projects.ProjectByID(ctx, newTask.ProjectID); err != nil {
		return models.Task{}, err
	}
	if newTask.UserID != nil {
		if _, err := s.users.UserByID(ctx, *newTask.UserID); err != nil {
			return models.Task{}, err
		}
	}

	task, err := s.tasks.CreateTask(ctx, newTask)
	if err != nil {
		return models.Task{}, err
	}
	s.history.record(ctx, s.history.taskEntry(task, actorID, models.ActivityTaskCreated, task.Title))
	return task, nil
}

// FindAll parses the optional query values and lists the matching tasks.
func (s *TaskService) FindAll(ctx context.Context, projectID *int64, status *string) ([]models.Task, error) {
	filter := models.TaskFilter{ProjectID: projectID}
	if status != nil {
		parsed, err := models.ParseTaskStatus(*status)
		if err != nil {
			return nil, err
		}
		filter.Status = &parsed
	}
	return s.tasks.ListTasks(ctx, filter)
}

func (s *TaskService) Get(ctx context.Context, id int64) (models.Task, error) {
	return s.tasks.TaskByID(ctx, id)
}

func (s *TaskService) AssignUser(ctx context.Context, actorID, taskID, userID int64) (models.Task, error) {
	if _, err := s.tasks.TaskByID(ctx, taskID); err != nil {
		return models.Task{}, err
	}
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.tasks.UpdateTask(ctx, taskID, models.TaskUpdate{UserID: &userID})
	if err != nil {
		return models.Task{}, err
	}
	s.history.record(ctx, s.history.taskEntry(task, actorID, models.ActivityTaskAssigned, user.Email))
	return task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, actorID, taskID int64, raw string) (models.Task, error) {
	status, err := models.ParseTaskStatus(raw)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.tasks.UpdateTask(ctx, taskID, models.TaskUpdate{Status: &status})
	if err != nil {
		return models.Task{}, err
	}
	s.history.record(ctx, s.history.taskEntry(task, actorID, models.ActivityTaskStatus, string(status)))
	return task, nil
}

func (s *TaskService) UpdatePriority(ctx context.Context, actorID, taskID int64, raw string) (models.Task, error) {
	priority, err := models.ParseTaskPriority(raw)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.tasks.UpdateTask(ctx, taskID, models.TaskUpdate{Priority: &priority})
	if err != nil {
		return models.Task{}, err
	}
	s.history.record(ctx, s.history.taskEntry(task, actorID, models.ActivityTaskPriority, string(priority)))
	return task, nil
}

// UpdateDueDate sets the due date, or clears it when raw is nil.
func (s *TaskService) UpdateDueDate(ctx context.Context, actorID, taskID int64, raw *string) (models.Task, error) {
	update := models.TaskUpdate{ClearDueDate: raw == nil}
	if raw != nil {
		due, err := models.ParseDueDate(*raw)
		if err != nil {
			return models.Task{}, err
		}
		update.DueDate = &due
	}

	task, err := s.tasks.UpdateTask(ctx, taskID, update)
	if err != nil {
		return models.Task{}, err
	}

	detail := "cleared"
	if task.DueDate != nil {
		detail = task.DueDate.Format(time.RFC3339)
	}
	s.history.record(ctx, s.history.taskEntry(task, actorID, models.ActivityTaskDueDate, detail))
	return task, nil
}
