package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/evbind/internal/event/binding"
	"github.com/dshills/evbind/internal/report"
)

func newReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Bind events and print the binding report",
		Long: "report runs a binding pass over the program's declarations and prints\n" +
			"every binding and binding error. The format is set with --format.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); err == nil {
					err = cerr
				}
			}()

			prog := newProgram(cmd.OutOrStdout(), s.log, binding.WithStrict(s.cfg.Bind.Strict))
			r := prog.bind()
			defer prog.binder.Teardown()

			if err := report.Write(cmd.OutOrStdout(), r, s.cfg.ReportFormat()); err != nil {
				return err
			}
			if r.State == binding.StateRejected {
				return Error.New("binding pass rejected with %d errors", len(r.Errors))
			}
			return nil
		},
	}
}
