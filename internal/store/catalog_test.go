package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskCatalog_SeedsDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")

	catalog, err := NewTaskCatalog(path, logger.Nop())
	require.NoError(t, err)

	// table materialized on disk
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	assert.Len(t, catalog.All(), 6)
	assert.Len(t, catalog.ForLevel(models.LevelBasic), 3)
	assert.Len(t, catalog.ForLevel(models.LevelIntermediate), 2)
	assert.Len(t, catalog.ForLevel(models.LevelAdvanced), 1)
}

func TestTaskCatalog_ForLevel_KeepsCatalogOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	content := "level,task,description,minPoints,maxPoints\n" +
		"Basic,Z Task,desc,10,20\n" +
		"Intermediate,Middle,desc,30,40\n" +
		"Basic,A Task,desc,5,15\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	catalog, err := NewTaskCatalog(path, logger.Nop())
	require.NoError(t, err)

	basic := catalog.ForLevel(models.LevelBasic)
	require.Len(t, basic, 2)
	// catalog order, not alphabetical
	assert.Equal(t, "Z Task", basic[0].Name)
	assert.Equal(t, "A Task", basic[1].Name)
}

func TestTaskCatalog_FindByName(t *testing.T) {
	catalog, err := NewTaskCatalog(filepath.Join(t.TempDir(), "tasks.csv"), logger.Nop())
	require.NoError(t, err)

	task, err := catalog.FindByName("Composting")
	require.NoError(t, err)
	assert.Equal(t, models.LevelIntermediate, task.Level)
	assert.Equal(t, 35, task.MinPoints)
	assert.Equal(t, 50, task.MaxPoints)

	_, err = catalog.FindByName("Unknown Task")
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskCatalog_RejectsInvertedPointRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	content := "level,task,description,minPoints,maxPoints\n" +
		"Basic,Broken,desc,30,10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewTaskCatalog(path, logger.Nop())

	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestNewRewardCatalog_SortsByLevelThenCost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.csv")
	content := "id,level,title,description,costPoints\n" +
		"tree,Advanced,Planted Tree,desc,500\n" +
		"tote-bag,Intermediate,Tote Bag,desc,200\n" +
		"sticker-pack,Basic,Sticker Pack,desc,40\n" +
		"bottle,Intermediate,Reusable Bottle,desc,150\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	catalog, err := NewRewardCatalog(path, logger.Nop())
	require.NoError(t, err)

	all := catalog.All()
	require.Len(t, all, 4)
	ids := []string{all[0].ID, all[1].ID, all[2].ID, all[3].ID}
	assert.Equal(t, []string{"sticker-pack", "bottle", "tote-bag", "tree"}, ids)
}

func TestNewRewardCatalog_SeedsDefaultsOnFirstRun(t *testing.T) {
	catalog, err := NewRewardCatalog(filepath.Join(t.TempDir(), "rewards.csv"), logger.Nop())
	require.NoError(t, err)

	all := catalog.All()
	require.Len(t, all, 6)
	// already sorted: Basic rewards first, cheapest first
	assert.Equal(t, "sticker-pack", all[0].ID)
	assert.Equal(t, "tree", all[5].ID)
}

func TestNewRewardCatalog_RejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.csv")
	content := "id,level,title,description,costPoints\n" +
		"bottle,Basic,Bottle,desc,100\n" +
		"bottle,Basic,Other Bottle,desc,120\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewRewardCatalog(path, logger.Nop())

	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestRewardCatalog_FindByID(t *testing.T) {
	catalog, err := NewRewardCatalog(filepath.Join(t.TempDir(), "rewards.csv"), logger.Nop())
	require.NoError(t, err)

	reward, err := catalog.FindByID("workshop")
	require.NoError(t, err)
	assert.Equal(t, models.LevelAdvanced, reward.Level)
	assert.Equal(t, 350, reward.CostPoints)

	_, err = catalog.FindByID("unknown")
	require.ErrorIs(t, err, ErrRewardNotFound)
}
