package cli

import (
	"github.com/spf13/cobra"

	"ticksched/internal/report"
	"ticksched/internal/sched"
)

func newCompareCmd() *cobra.Command {
	var flags simFlags
	var algorithms string
	var details bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run several algorithms on the same workload and compare them",
		Example: `  ticksched compare -w tasks.csv
  ticksched compare -a rm,edf --difficulty 4 --periodic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg
			if err := flags.apply(cmd, &c); err != nil {
				return err
			}

			algs, err := sched.ParseAlgorithms(algorithms)
			if err != nil {
				return err
			}

			tasks, err := loadWorkload(flags.workload, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s, err := newSession(out, c, &flags)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err := s.Compare(algs, tasks)
			if err != nil {
				return err
			}

			if details {
				for _, res := range results {
					report.Write(out, res.Algorithm.String(), res)
				}
			}

			report.Title(out, "Comparison")
			report.Comparison(out, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithms, "algorithms", "a", "fcfs,sjn,rr,rm,edf", "Comma separated algorithms")
	cmd.Flags().BoolVar(&details, "details", false, "Also print the schedule of every algorithm")
	flags.bind(cmd)

	return cmd
}
