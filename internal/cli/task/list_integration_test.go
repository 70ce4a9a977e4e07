package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clipkg "github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/testutil"
	"github.com/thenoetrevino/todo/internal/testutil/cli"
)

func TestListTasks(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	open1 := cli.CreateTestTask(t, db, "open one", models.StatusCreated)
	finished := cli.CreateTestTask(t, db, "finished", models.StatusDone)
	open2 := cli.CreateTestTask(t, db, "open two", models.StatusCreated)
	gone := cli.CreateTestTask(t, db, "gone", models.StatusDeleted)

	t.Run("default output groups by status", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{})
		require.NoError(t, err)

		assert.Contains(t, output, "Created (2)")
		assert.Contains(t, output, "Done (1)")
		assert.Contains(t, output, "Deleted (1)")
		assert.Less(t, strings.Index(output, "open one"), strings.Index(output, "open two"))
		assert.Less(t, strings.Index(output, "open two"), strings.Index(output, "finished"))
		assert.Contains(t, output, open1[:shortUUIDLen])
	})

	t.Run("json output partitions every task", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		data := testutil.ParseJSON(t, output)["data"].(map[string]any)
		uuids := func(key string) []string {
			var ids []string
			for _, item := range data[key].([]any) {
				ids = append(ids, item.(map[string]any)["uuid"].(string))
			}
			return ids
		}
		assert.Equal(t, []string{open1, open2}, uuids("created"))
		assert.Equal(t, []string{finished}, uuids("done"))
		assert.Equal(t, []string{gone}, uuids("deleted"))
	})

	t.Run("status filter with quiet output", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", "created", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, open1+"\n"+open2+"\n", output)
	})

	t.Run("status filter json omits other groups", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", "done", "--json"})
		require.NoError(t, err)

		data := testutil.ParseJSON(t, output)["data"].(map[string]any)
		assert.Len(t, data, 1)
		assert.Len(t, data["done"], 1)
	})

	t.Run("status filter ignores case", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", "ALL", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, open1+"\n"+open2+"\n"+finished+"\n"+gone+"\n", output)

		output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", "Done", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, finished+"\n", output)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", "archived"})
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitUsage, clipkg.ExitCode(err))
	})
}

func TestListTasks_Empty(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{})
	require.NoError(t, err)
	assert.Contains(t, output, "No tasks")

	output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	for _, key := range []string{"created", "done", "deleted"} {
		assert.Empty(t, data[key], key)
		assert.NotNil(t, data[key], key)
	}
}

func TestListTasks_BuyMilkScenario(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	listed := func(status string) string {
		t.Helper()
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--status", status, "--quiet"})
		require.NoError(t, err)
		return output
	}

	output, err := cli.ExecuteCLICommand(t, app, AddCmd(), []string{"buy milk", "--quiet"})
	require.NoError(t, err)
	id := strings.TrimSpace(output)

	assert.Equal(t, id+"\n", listed("created"))
	assert.Empty(t, listed("done"))

	_, err = cli.ExecuteCLICommand(t, app, DoneCmd(), []string{id})
	require.NoError(t, err)
	assert.Empty(t, listed("created"))
	assert.Equal(t, id+"\n", listed("done"))

	_, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{id})
	require.NoError(t, err)
	assert.Empty(t, listed("done"))
	assert.Equal(t, id+"\n", listed("deleted"))
}
