package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/logger"
	"github.com/spacey-learn/spacey/internal/store"
)

// EnvUser selects the learner when --user is not given.
const EnvUser = "SPACEY_USER"

var rootCmd = &cobra.Command{
	Use:   "spacey",
	Short: "Narrated space lessons in your terminal",
	Long:  "Spacey - a robot guide narrates short space lessons, quizzes you, and hands out badges.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

// Execute runs the root command; ctx is cancelled on interrupt by main.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SPACEY_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides SPACEY_USER env var)")
	rootCmd.PersistentFlags().String("lesson", "", "Path to a lesson YAML/JSON document (default: built-in Mars Rover Mission)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SPACEY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// env is what most commands need: the store, a learner, the lesson and a
// logger writing next to the database.
type env struct {
	store   *store.Store
	user    store.User
	catalog *catalog.Catalog
	config  lesson.Config
	log     *logger.Logger
}

func (e *env) Close() {
	e.log.Sync()
	e.store.Close()
}

// lessonOptions returns session options bound to the env's learner.
func (e *env) lessonOptions() lesson.Options {
	return lesson.Options{
		UserID: e.user.ID,
		Config: e.config,
		Logger: e.log,
		Store:  e.store,
		Events: e.store,
	}
}

// setup opens everything in env. logToFile keeps log output off the
// terminal for the TUI. On error nothing is left open.
func setup(cmd *cobra.Command, logToFile bool) (_ *env, err error) {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	level, _ := cmd.Flags().GetString("log-level")
	logOpts := logger.Options{Level: level}
	if logToFile {
		logOpts.Path = store.LogPath(dbPath)
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var st *store.Store
	defer func() {
		if err == nil {
			return
		}
		log.Error("setup failed", "error", err)
		if st != nil {
			st.Close()
		}
		log.Sync()
	}()

	lessonPath, _ := cmd.Flags().GetString("lesson")
	cat, err := catalog.Resolve(lessonPath)
	if err != nil {
		return nil, err
	}

	cfg, err := lesson.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("lesson config: %w", err)
	}

	st, err = store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = os.Getenv(EnvUser)
	}
	var u store.User
	if userID == "" {
		u, err = st.DefaultUser(ctx)
	} else {
		u, err = st.EnsureUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve learner: %w", err)
	}

	log = log.With("user", u.ID)
	log.Debug("environment ready", "db", dbPath, "lesson", cat.ID())

	return &env{store: st, user: u, catalog: cat, config: cfg, log: log}, nil
}
