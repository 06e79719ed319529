package cli

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/event/binding"
	"github.com/dshills/evbind/internal/event/metrics"
)

func newRunCommand() *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bind events and run the post lifecycle demo",
		Long: "run binds the post producers to the console consumers, then asks,\n" +
			"edits, closes and deletes a post. Each step fires its event.",
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

			reg := prometheus.NewRegistry()
			collector, err := metrics.New(reg)
			if err != nil {
				return Error.Wrap(err)
			}

			prog := newProgram(cmd.OutOrStdout(), s.log,
				binding.WithStrict(s.cfg.Bind.Strict),
				binding.WithObserver(collector),
			)
			report := prog.bind()
			collector.ObserveReport(report)
			defer prog.binder.Teardown()

			if report.State == binding.StateRejected {
				return Error.New("binding pass rejected: %v", report.Err())
			}

			ctx := cmd.Context()
			for _, st := range prog.steps() {
				if ctx != nil && ctx.Err() != nil {
					return Error.Wrap(ctx.Err())
				}
				if err := st.run(); err != nil {
					s.log.Error("step failed", zap.String("step", st.name), zap.Error(err))
					return Error.New("%s: %v", st.name, err)
				}
			}

			if showMetrics {
				return writeMetrics(cmd.ErrOrStderr(), reg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print dispatch metrics to stderr in Prometheus text format after the run")
	return cmd
}

// writeMetrics encodes every gathered family in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return Error.Wrap(err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}
