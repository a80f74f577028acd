package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Augustnerdaal/REALestate/internal/finance"
	"github.com/Augustnerdaal/REALestate/internal/models"
	"github.com/google/uuid"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Repository keeps the project list in a single JSON file, newest first
type Repository struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewRepository initializes a repository backed by the file at path.
// The file is created on the first write.
func NewRepository(path string) *Repository {
	return &Repository{path: path, now: time.Now}
}

// load reads the whole list; a missing file is an empty list
func (r *Repository) load() ([]models.Project, error) {
	b, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project store: %w", err)
	}
	var projects []models.Project
	if err := json.Unmarshal(b, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode project store: %w", err)
	}
	return projects, nil
}

// save writes the list to a temporary file and renames it over the store
func (r *Repository) save(projects []models.Project) error {
	b, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project store: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync temp store file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace project store: %w", err)
	}
	return nil
}

// update runs fn on the loaded list and saves the result
func (r *Repository) update(fn func([]models.Project) ([]models.Project, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	projects, err := r.load()
	if err != nil {
		return err
	}
	projects, err = fn(projects)
	if err != nil {
		return err
	}
	return r.save(projects)
}

func indexOf(projects []models.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateProject stores a new project in front of the list
func (r *Repository) CreateProject(project *models.Project) error {
	project.ID = uuid.NewString()
	project.CreatedAt = r.now().UTC()
	project.UpdatedAt = project.CreatedAt
	if project.Scenarios == nil {
		project.Scenarios = []models.Scenario{}
	}
	err := r.update(func(projects []models.Project) ([]models.Project, error) {
		return append([]models.Project{*project}, projects...), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// ListProjects returns all projects, most recently created first
func (r *Repository) ListProjects() ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	projects, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// FindProjectByID retrieves a project by identifier
func (r *Repository) FindProjectByID(id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	projects, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	i := indexOf(projects, id)
	if i < 0 {
		return nil, ErrProjectNotFound
	}
	return &projects[i], nil
}

// UpdateProjectInput replaces the input of a project
func (r *Repository) UpdateProjectInput(id string, in finance.Input) (*models.Project, error) {
	var updated models.Project
	err := r.update(func(projects []models.Project) ([]models.Project, error) {
		i := indexOf(projects, id)
		if i < 0 {
			return nil, ErrProjectNotFound
		}
		projects[i].Input = in
		projects[i].UpdatedAt = r.now().UTC()
		updated = projects[i]
		return projects, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &updated, nil
}

// DeleteProject removes a project by identifier
func (r *Repository) DeleteProject(id string) error {
	err := r.update(func(projects []models.Project) ([]models.Project, error) {
		i := indexOf(projects, id)
		if i < 0 {
			return nil, ErrProjectNotFound
		}
		return append(projects[:i], projects[i+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddScenario appends a scenario to a project and labels it S<n>
func (r *Repository) AddScenario(projectID string, scenario *models.Scenario) error {
	err := r.update(func(projects []models.Project) ([]models.Project, error) {
		i := indexOf(projects, projectID)
		if i < 0 {
			return nil, ErrProjectNotFound
		}
		p := &projects[i]
		scenario.ID = uuid.NewString()
		scenario.Label = fmt.Sprintf("S%d", len(p.Scenarios)+1)
		scenario.CreatedAt = r.now().UTC()
		p.Scenarios = append(p.Scenarios, *scenario)
		p.UpdatedAt = scenario.CreatedAt
		return projects, nil
	})
	if err != nil {
		return fmt.Errorf("failed to add scenario: %w", err)
	}
	return nil
}

// DeleteScenario removes a scenario from a project
func (r *Repository) DeleteScenario(projectID, scenarioID string) error {
	err := r.update(func(projects []models.Project) ([]models.Project, error) {
		i := indexOf(projects, projectID)
		if i < 0 {
			return nil, ErrProjectNotFound
		}
		p := &projects[i]
		for j := range p.Scenarios {
			if p.Scenarios[j].ID == scenarioID {
				p.Scenarios = append(p.Scenarios[:j], p.Scenarios[j+1:]...)
				p.UpdatedAt = r.now().UTC()
				return projects, nil
			}
		}
		return nil, ErrScenarioNotFound
	})
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}
