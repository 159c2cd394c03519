package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhv/focal/internal/db"
)

func TestCreateProject(t *testing.T) {
	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close(gdb) }()

	project, err := db.CreateProject(gdb, "  website  ", "main work")
	require.NoError(t, err)
	assert.Equal(t, "website", project.Name, "names are trimmed")
	assert.NotZero(t, project.ID)

	_, err = db.CreateProject(gdb, "website", "")
	assert.Error(t, err, "duplicate names are rejected")

	_, err = db.CreateProject(gdb, "   ", "")
	assert.Error(t, err, "blank names are rejected")
}

func TestResolveProject(t *testing.T) {
	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close(gdb) }()

	created, err := db.CreateProject(gdb, "website", "")
	require.NoError(t, err)

	byName, err := db.ResolveProject(gdb, "website")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := db.ResolveProject(gdb, "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	_, err = db.ResolveProject(gdb, "nope")
	assert.Error(t, err)
}

func TestArchiveProject(t *testing.T) {
	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close(gdb) }()

	_, err = db.CreateProject(gdb, "website", "")
	require.NoError(t, err)

	archived, err := db.ArchiveProject(gdb, "website")
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.NotNil(t, archived.ArchivedAt)

	_, err = db.ArchiveProject(gdb, "website")
	assert.Error(t, err, "double archive is rejected")

	visible, err := db.GetProjects(gdb, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := db.GetProjects(gdb, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
