package service

import (
	"fmt"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/models"
	"github.com/Augustnerdaal/REALestate/internal/repository"
)

// CreateProject saves an input to the project list
func (s *Service) CreateProject(in finance.Input) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	project := &models.Project{Input: in}
	if err := s.repo.CreateProject(project); err != nil {
		return nil, err
	}
	s.log.Infof("Project created: %s (%s)", project.ID, project.Name())
	return project, nil
}

// ListProjects returns the project list, newest first
func (s *Service) ListProjects() ([]models.Project, error) {
	return s.repo.ListProjects()
}

// GetProject opens a stored project
func (s *Service) GetProject(id string) (*models.Project, error) {
	return s.repo.FindProjectByID(id)
}

// DeleteProject removes a project from the list
func (s *Service) DeleteProject(id string) error {
	if err := s.repo.DeleteProject(id); err != nil {
		return err
	}
	s.log.Infof("Project deleted: %s", id)
	return nil
}

// ProjectAnalysis analyzes the stored input of a project
func (s *Service) ProjectAnalysis(id string, years int) (*finance.Analysis, error) {
	p, err := s.repo.FindProjectByID(id)
	if err != nil {
		return nil, err
	}
	return s.Analyze(p.Input, years)
}

// SaveScenario stores the project's input with overrides applied
func (s *Service) SaveScenario(projectID string, overrides finance.Overrides) (*models.Scenario, error) {
	p, err := s.repo.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if err := overrides.Validate(p.Input); err != nil {
		return nil, invalid(err)
	}
	in := overrides.Apply(p.Input)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	k := finance.ComputeKPIs(in)
	if err := k.Finite(); err != nil {
		return nil, invalid(err)
	}
	scenario := &models.Scenario{Input: in, KPIs: k}
	if err := s.repo.AddScenario(projectID, scenario); err != nil {
		return nil, err
	}
	s.log.Infof("Scenario %s saved for project %s", scenario.Label, projectID)
	return scenario, nil
}

// RemoveScenario deletes a saved scenario
func (s *Service) RemoveScenario(projectID, scenarioID string) error {
	return s.repo.DeleteScenario(projectID, scenarioID)
}

// ApplyScenario makes a saved scenario's input the project's input
func (s *Service) ApplyScenario(projectID, scenarioID string) (*models.Project, error) {
	p, err := s.repo.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	for _, sc := range p.Scenarios {
		if sc.ID != scenarioID {
			continue
		}
		updated, err := s.repo.UpdateProjectInput(projectID, sc.Input)
		if err != nil {
			return nil, err
		}
		s.log.Infof("Scenario %s applied to project %s", sc.Label, projectID)
		return updated, nil
	}
	return nil, fmt.Errorf("failed to apply scenario: %w", repository.ErrScenarioNotFound)
}
