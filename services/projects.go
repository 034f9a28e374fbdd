package services

import (
	"context"
	"fmt"

	"taskboard/models"
	"taskboard/utilities"
)

type ProjectService struct {
	projects ProjectStore
	history  history
}

func NewProjectService(projects ProjectStore, recorder ActivityRecorder) *ProjectService {
	return &ProjectService{projects: projects, history: newHistory(recorder)}
}

// Create stores a project owned by ownerID.
func (s *ProjectService) Create(ctx context.Context, ownerID int64, in models.CreateProjectInput) (models.Project, error) {
	if err := in.Validate(); err != nil {
		return models.Project{}, err
	}

	project, err := s.projects.CreateProject(ctx, models.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
	})
	if err != nil {
		return models.Project{}, err
	}

	s.history.record(ctx, models.ActivityEntry{
		ProjectID: project.ID,
		ActorID:   ownerID,
		Action:    models.ActivityProjectCreated,
		Detail:    project.Name,
	})
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.ListProjects(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (models.Project, error) {
	return s.projects.ProjectByID(ctx, id)
}

// Delete removes the project and its tasks, then drops its history.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return err
	}
	if err := s.history.recorder.DeleteProject(ctx, id); err != nil {
		utilities.LogError(err, fmt.Sprintf("failed to delete activity of project %d", id))
	}
	return nil
}

// Activity lists the latest entries of an existing project, newest first.
func (s *ProjectService) Activity(ctx context.Context, id int64) ([]models.ActivityEntry, error) {
	if _, err := s.projects.ProjectByID(ctx, id); err != nil {
		return nil, err
	}
	return s.history.recorder.List(ctx, id, ActivityLimit)
}
