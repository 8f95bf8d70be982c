package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-tools/tally/pkg/services/assistant"
	"github.com/tally-tools/tally/pkg/services/export"
	"github.com/tally-tools/tally/pkg/services/tracker"
	"github.com/tally-tools/tally/pkg/store/sqlite"
	"github.com/tally-tools/tally/pkg/store/sqlite/entry"
	"github.com/tally-tools/tally/pkg/store/sqlite/quantity"
)

func setupCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	quantities, err := quantity.NewStore(db)
	require.NoError(t, err)
	entries, err := entry.NewStore(db)
	require.NoError(t, err)

	trk, err := tracker.NewService(quantities, entries, tracker.Options{})
	require.NoError(t, err)
	asst, err := assistant.NewService(trk)
	require.NoError(t, err)
	exp, err := export.NewExporter(trk)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	cli := NewCLI(Options{
		Tracker:   trk,
		Assistant: asst,
		Exporter:  exp,
		Output:    out,
	})
	return cli, out
}

func run(t *testing.T, cli *CLI, args ...string) error {
	t.Helper()
	cli.rootCmd.SetArgs(args)
	return cli.Execute()
}

func TestCLI_AddLogTotal(t *testing.T) {
	cli, out := setupCLI(t)

	require.NoError(t, run(t, cli, "add", "--name", "Water (oz)", "--format", "decimal"))
	assert.Contains(t, out.String(), "Created Water (oz)")
	out.Reset()

	require.NoError(t, run(t, cli, "log", "--quantity", "water (oz)", "--value", "8"))
	assert.Contains(t, out.String(), "Logged 8.00 to Water (oz)")
	out.Reset()

	require.NoError(t, run(t, cli, "log", "--quantity", "water (oz)", "--value", "12"))
	out.Reset()

	require.NoError(t, run(t, cli, "total", "--quantity", "water (oz)"))
	assert.Contains(t, out.String(), "Water (oz): 20.00")
}

func TestCLI_DurationGrammar(t *testing.T) {
	cli, out := setupCLI(t)

	require.NoError(t, run(t, cli, "add", "--name", "Reading Time", "--format", "duration"))
	out.Reset()

	require.NoError(t, run(t, cli, "log", "--quantity", "reading time", "--value", "1.5 hours"))
	assert.Contains(t, out.String(), "Logged 1:30 to Reading Time")
}

func TestCLI_Report(t *testing.T) {
	cli, out := setupCLI(t)

	require.NoError(t, run(t, cli, "add", "--name", "Steps"))
	out.Reset()
	require.NoError(t, run(t, cli, "log", "--quantity", "steps", "--value", "4200"))
	out.Reset()

	require.NoError(t, run(t, cli, "report", "--quantity", "steps", "--period", "all"))
	assert.Contains(t, out.String(), "Steps by all")
	assert.Contains(t, out.String(), "All Time: 4200 (1 entries)")
}

func TestCLI_Report_InvalidPeriod(t *testing.T) {
	cli, out := setupCLI(t)

	require.NoError(t, run(t, cli, "add", "--name", "Steps"))
	out.Reset()

	err := run(t, cli, "report", "--quantity", "steps", "--period", "decade")
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrInvalidGrouping)
}

func TestCLI_List(t *testing.T) {
	cli, out := setupCLI(t)

	require.NoError(t, run(t, cli, "list"))
	assert.Contains(t, out.String(), "No quantities tracked yet.")
	out.Reset()

	require.NoError(t, run(t, cli, "add", "--name", "Calories"))
	out.Reset()

	require.NoError(t, run(t, cli, "list"))
	assert.Contains(t, out.String(), "Calories")
	assert.Contains(t, out.String(), "NAME")
}

func TestCLI_Export(t *testing.T) {
	cli, out := setupCLI(t)

	require.NoError(t, run(t, cli, "add", "--name", "Calories"))
	out.Reset()
	require.NoError(t, run(t, cli, "log", "--quantity", "calories", "--value", "350"))
	out.Reset()

	require.NoError(t, run(t, cli, "export", "--output", "-"))
	assert.Contains(t, out.String(), "Timestamp,Quantity Name")
	assert.Contains(t, out.String(), "Calories")
}

func TestCLI_Log_UnknownQuantity(t *testing.T) {
	cli, _ := setupCLI(t)

	err := run(t, cli, "log", "--quantity", "stonks", "--value", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
}
