package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/okhv/focal/internal/models"
)

// CreateProject creates a new project with a unique name
func CreateProject(gdb *gorm.DB, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}

	var existing models.Project
	if err := gdb.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("project %q already exists (#%d)", name, existing.ID)
	}

	project := models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := gdb.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjects retrieves all projects, optionally including archived ones
func GetProjects(gdb *gorm.DB, includeArchived bool) ([]models.Project, error) {
	var projects []models.Project
	q := gdb.Order("created_at ASC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ResolveProject looks a project up by numeric ID or by name.
func ResolveProject(gdb *gorm.DB, ref string) (*models.Project, error) {
	ref = strings.TrimSpace(ref)
	var project models.Project

	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		if err := gdb.First(&project, uint(id)).Error; err == nil {
			return &project, nil
		}
	}

	err := gdb.Where("name = ?", ref).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project %q not found", ref)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ArchiveProject marks a project archived so new sessions cannot target it
func ArchiveProject(gdb *gorm.DB, ref string) (*models.Project, error) {
	project, err := ResolveProject(gdb, ref)
	if err != nil {
		return nil, err
	}
	if project.Archived {
		return nil, fmt.Errorf("project %q is already archived", project.Name)
	}

	now := time.Now()
	project.Archived = true
	project.ArchivedAt = &now
	if err := gdb.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}
