package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dips-cli/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type initResult struct {
	ConfigPath   string `json:"configPath"`
	DatabasePath string `json:"databasePath"`
	// CreatedConfig is false when an existing config file was kept.
	CreatedConfig bool `json:"createdConfig"`
}

func (r initResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Dips got initialized.\nconfig:   %s\ndatabase: %s\n", r.ConfigPath, r.DatabasePath)
	return err
}

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config file and database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := strings.TrimSpace(app.ConfigPath)
			if cfgPath == "" {
				p, err := config.Path()
				if err != nil {
					return writeErr(cmd, err)
				}
				cfgPath = p
			}

			// An existing config is never overwritten; init only fills the gaps.
			created := false
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				cfg, err := config.Default()
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := config.Save(cfgPath, cfg); err != nil {
					return writeErr(cmd, err)
				}
				created = true
			}

			sess, err := openSession(cmd.Context(), &App{
				ConfigPath: cfgPath,
				DBPath:     app.DBPath,
				DebugLog:   app.DebugLog,
			}, true)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			sess.log.Info("initialized", zap.String("config", cfgPath), zap.String("db", sess.store.Path()), zap.Bool("createdConfig", created))

			return writeOut(cmd, app, initResult{
				ConfigPath:    cfgPath,
				DatabasePath:  sess.store.Path(),
				CreatedConfig: created,
			})
		},
	}
	return cmd
}
