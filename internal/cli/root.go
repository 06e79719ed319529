// Package cli implements the evbind command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/config"
	"github.com/dshills/evbind/internal/logging"
)

// Error is the class of command errors.
var Error = errs.Class("evbind")

// BuildInfo is the version information set at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the evbind command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "evbind",
		Short: "Declarative event binding demo",
		Long: "evbind binds declared event producers to their consumers and runs\n" +
			"the post lifecycle demo against the resulting bindings.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(),
		newReportCommand(),
		newVersionCommand(info),
	)
	return root
}

// session is the per-command state built from configuration.
type session struct {
	cfg   config.Config
	log   *zap.Logger
	close func() error
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	lc := cfg.Logging()
	lc.Output = cmd.ErrOrStderr()
	log, closer, err := logging.New(lc)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("command", cmd.Name()))

	return &session{cfg: cfg, log: log, close: closer}, nil
}

func (s *session) Close() error {
	return s.close()
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "evbind %s\n", info.Version)
			fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			fmt.Fprintf(out, "Built: %s\n", info.Date)
			return nil
		},
	}
}
