package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taskboard/models"
)

// Memory is an in-process store with the same semantics as Postgres,
// including the email uniqueness rule and the project to task cascade.
type Memory struct {
	mu sync.RWMutex

	users    map[int64]models.User
	emails   map[string]int64
	projects map[int64]models.Project
	tasks    map[int64]models.Task

	nextUser    int64
	nextProject int64
	nextTask    int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[int64]models.User),
		emails:   make(map[string]int64),
		projects: make(map[int64]models.Project),
		tasks:    make(map[int64]models.Task),
		now:      time.Now,
	}
}

func (m *Memory) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := m.emails[key]; exists {
		return models.User{}, models.Conflictf("User with email %s already exists", user.Email)
	}
	m.nextUser++
	user.ID = m.nextUser
	user.CreatedAt = m.now().UTC()
	m.users[user.ID] = user
	m.emails[key] = user.ID
	return user, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return models.User{}, models.NotFoundf("User with email %s not found", email)
	}
	return m.users[id], nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, models.NotFoundf("User with id %d not found", id)
	}
	return user, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *Memory) UpdateUserPassword(_ context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.NotFoundf("User with id %d not found", id)
	}
	user.PasswordHash = passwordHash
	m.users[id] = user
	return nil
}

func (m *Memory) CreateProject(_ context.Context, project models.Project) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[project.OwnerID]; !ok {
		return models.Project{}, models.NotFoundf("User with id %d not found", project.OwnerID)
	}
	m.nextProject++
	now := m.now().UTC()
	project.ID = m.nextProject
	project.CreatedAt = now
	project.UpdatedAt = now
	project.Tasks = nil
	m.projects[project.ID] = project

	project.Tasks = []models.Task{}
	return project, nil
}

func (m *Memory) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := make([]models.Project, 0, len(m.projects))
	for _, project := range m.projects {
		project.Tasks = m.filterTasks(models.TaskFilter{ProjectID: &project.ID})
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (m *Memory) ProjectByID(_ context.Context, id int64) (models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	project, ok := m.projects[id]
	if !ok {
		return models.Project{}, models.NotFoundf("Project with id %d not found", id)
	}
	project.Tasks = m.filterTasks(models.TaskFilter{ProjectID: &id})
	return project, nil
}

func (m *Memory) DeleteProject(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return models.NotFoundf("Project with id %d not found", id)
	}
	for taskID, task := range m.tasks {
		if task.ProjectID == id {
			delete(m.tasks, taskID)
		}
	}
	delete(m.projects, id)
	return nil
}

func (m *Memory) CreateTask(_ context.Context, in models.NewTask) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[in.ProjectID]; !ok {
		return models.Task{}, models.NotFoundf("Project with id %d not found", in.ProjectID)
	}
	if in.UserID != nil {
		if _, ok := m.users[*in.UserID]; !ok {
			return models.Task{}, models.NotFoundf("User with id %d not found", *in.UserID)
		}
	}

	m.nextTask++
	now := m.now().UTC()
	task := models.Task{
		ID:          m.nextTask,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusTodo,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		ProjectID:   in.ProjectID,
		UserID:      in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.tasks[task.ID] = task
	return m.withAssignee(task), nil
}

func (m *Memory) ListTasks(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filterTasks(filter), nil
}

func (m *Memory) TaskByID(_ context.Context, id int64) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return models.Task{}, models.NotFoundf("Task with id %d not found", id)
	}
	return m.withAssignee(task), nil
}

func (m *Memory) UpdateTask(_ context.Context, id int64, update models.TaskUpdate) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return models.Task{}, models.NotFoundf("Task with id %d not found", id)
	}
	if update.UserID != nil {
		if _, ok := m.users[*update.UserID]; !ok {
			return models.Task{}, models.NotFoundf("User with id %d not found", *update.UserID)
		}
		userID := *update.UserID
		task.UserID = &userID
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.ClearDueDate {
		task.DueDate = nil
	} else if update.DueDate != nil {
		due := *update.DueDate
		task.DueDate = &due
	}
	task.UpdatedAt = m.now().UTC()
	m.tasks[id] = task
	return m.withAssignee(task), nil
}

// filterTasks expects m.mu to be held.
func (m *Memory) filterTasks(filter models.TaskFilter) []models.Task {
	tasks := []models.Task{}
	for _, task := range m.tasks {
		if filter.ProjectID != nil && task.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		tasks = append(tasks, m.withAssignee(task))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (m *Memory) withAssignee(task models.Task) models.Task {
	task.AssignedTo = nil
	if task.UserID != nil {
		if user, ok := m.users[*task.UserID]; ok {
			summary := user.Summary()
			task.AssignedTo = &summary
		}
	}
	return task
}
