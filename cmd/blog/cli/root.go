// Package cli 定义 blog 命令行的全部子命令。
package cli

import (
	"fmt"
	"strings"

	"github.com/machaira/blog/internal/config"
	"github.com/machaira/blog/internal/logging"
	"github.com/spf13/cobra"
)

// VersionInfo 在构建时通过 -ldflags 注入。
type VersionInfo struct {
	Version string
	Commit  string
}

// state 在 PersistentPreRunE 中填充，供子命令共享。
type state struct {
	path     string
	logLevel string
	noColor  bool

	cfg *config.AppConfig
}

func (s *state) logger(name string) logging.Logger {
	return logging.New(name, s.cfg.Log)
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	st := &state{}

	cmd := &cobra.Command{
		Use:           "blog",
		Short:         "Machaira blog server",
		Long:          "A small blog engine with posts, tags, moderated comments, feeds and full-text search.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(st.path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = strings.ToUpper(st.logLevel)
			}
			if st.noColor {
				cfg.Log.NoColor = true
			}
			st.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&st.path, "config", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().BoolVar(&st.noColor, "no-color", false, "Disables colored log output")
	cmd.PersistentFlags().StringVar(&st.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	cmd.AddCommand(newVersionCommand(info))
	cmd.AddCommand(newServeCommand(st))
	cmd.AddCommand(newMigrateCommand(st))
	cmd.AddCommand(newCreateSuperUserCommand(st))
	cmd.AddCommand(newConfigCommand())

	return cmd
}
