package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"dips-cli/internal/config"
	"dips-cli/internal/format"
	"dips-cli/internal/gitrepo"
	"dips-cli/internal/logging"
	"dips-cli/internal/model"
	"dips-cli/internal/store"
	"dips-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	DBPath     string
	DebugLog   string
	Dir        string
	Format     string
	Pretty     bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dips",
		Short:        "Directory-scoped notes (CLI + TUI)",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI for the current directory
  dips

  # Create the config file and database
  dips init

  # Save a note for this directory (or for every directory)
  dips add "make test-integration"
  dips add --global "git log --oneline --graph"

  # List what is stored here
  dips get
  dips get --all --format json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DIPS_CONFIG", ""), "Config file (default: ~/.dips/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("DIPS_DB", ""), "Database file (overrides the config file)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("DIPS_DEBUG_LOG", ""), "Write debug logs (JSON lines) to this file")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DIPS_DIR", ""), "Directory to resolve the scope from (default: current directory)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DIPS_FORMAT", "text"), "Output format: text|json|edn")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print json/edn output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newTagCmd(app))
	cmd.AddCommand(newScopesCmd(app))
	cmd.AddCommand(newRecipeCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	sess, err := openSession(cmd.Context(), app, false)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()

	loc, err := sess.locate(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	sess.log.Info("starting tui", zap.String("path", loc.Path), zap.String("db", sess.store.Path()))
	return tui.Run(sess.store, loc, sess.log)
}

// session is what every store-backed command needs: the opened store, a logger
// and the directory the scope is resolved from.
type session struct {
	app   *App
	store *store.Store
	log   *zap.Logger
}

// openSession loads the config and opens the database. Unless create is set, a
// missing database yields store.ErrNotInit.
func openSession(ctx context.Context, app *App, create bool) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := logging.New(app.DebugLog)
	if err != nil {
		return nil, err
	}
	path, err := databaseFile(app)
	if err != nil {
		return nil, err
	}
	if !create && !store.Exists(path) {
		log.Debug("database missing", zap.String("path", path))
		return nil, store.ErrNotInit
	}
	st, err := store.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	log.Debug("store opened", zap.String("path", path))
	return &session{app: app, store: st, log: log}, nil
}

func (s *session) Close() {
	_ = s.store.Close()
	_ = s.log.Sync()
}

func (s *session) locate(ctx context.Context) (model.Location, error) {
	dir, err := s.app.workDir()
	if err != nil {
		return model.Location{}, err
	}
	return gitrepo.Locate(ctx, dir)
}

func databaseFile(app *App) (string, error) {
	if p := strings.TrimSpace(app.DBPath); p != "" {
		return p, nil
	}
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return "", err
	}
	return cfg.DatabaseFile(), nil
}

func (app *App) workDir() (string, error) {
	if d := strings.TrimSpace(app.Dir); d != "" {
		return d, nil
	}
	return os.Getwd()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope is the json/edn output shape: {"data": ...}. Text output renders data only.
type envelope struct {
	Data any `json:"data"`
}

func (e envelope) WriteText(w io.Writer) error { return format.WriteText(w, e.Data) }

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), envelope{Data: v}, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
