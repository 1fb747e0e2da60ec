package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/catalog/catalogtest"
	"github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/store"
)

func TestPrintStats(t *testing.T) {
	at := time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local)
	var buf bytes.Buffer
	printStats(&buf, "Space Explorer ab12", catalogtest.Catalog(t),
		lesson.ProgressRecord{Completed: true, Score: 67, Date: at},
		[]catalog.Badge{{Name: "Finisher", EarnedDate: &at}})

	out := buf.String()
	assert.Contains(t, out, "Learner: Space Explorer ab12")
	assert.Contains(t, out, "Completed on Jan 2, 2026 with 67%")
	assert.Contains(t, out, "Badges (1)")
	assert.Contains(t, out, "Finisher")
}

func TestPrintStats_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, "x", catalogtest.Catalog(t), lesson.ProgressRecord{}, nil)
	assert.Contains(t, buf.String(), "Not started")
	assert.Contains(t, buf.String(), "none yet")
}

func TestValidateCommand(t *testing.T) {
	var buf bytes.Buffer
	validateCmd.SetOut(&buf)

	err := validateCmd.RunE(validateCmd, []string{"testdata/does-not-exist.yaml"})
	require.Error(t, err)

	var cfgErr *catalog.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func newSetupCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	c.Flags().String("user", "", "")
	c.Flags().String("lesson", "", "")
	c.Flags().String("log-level", "info", "")
	require.NoError(t, c.ParseFlags(args))
	c.SetContext(context.Background())
	return c
}

func TestSetup_OpensEverything(t *testing.T) {
	t.Setenv(lesson.EnvTypingDelay, "")
	dbPath := filepath.Join(t.TempDir(), "spacey.db")
	e, err := setup(newSetupCmd(t, "--db", dbPath, "--user", "kid-1"), true)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "kid-1", e.user.ID)
	assert.Equal(t, "mars-rover-mission", e.catalog.ID())
	assert.Equal(t, lesson.DefaultConfig(), e.config)
}

func TestSetup_FailureAfterLoggerIsLogged(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "spacey.db")
	c := newSetupCmd(t, "--db", dbPath, "--lesson", filepath.Join(dir, "missing.yaml"))

	e, err := setup(c, true)
	require.Error(t, err)
	assert.Nil(t, e)

	data, readErr := os.ReadFile(store.LogPath(dbPath))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "setup failed")

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "store should not be opened")
}
