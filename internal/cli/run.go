package cli

import (
	"github.com/spf13/cobra"

	"ticksched/internal/report"
	"ticksched/internal/sched"
)

func newRunCmd() *cobra.Command {
	var flags simFlags
	var algorithm string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one algorithm on a workload",
		Example: `  ticksched run -a rr -q 2 -w tasks.yml
  ticksched run -a edf --difficulty 3 --periodic --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg
			if err := flags.apply(cmd, &c); err != nil {
				return err
			}
			if cmd.Flags().Changed("algorithm") {
				c.Algorithm = algorithm
			}

			alg, err := sched.ParseAlgorithm(c.Algorithm)
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

			res, err := s.Run(alg, tasks)
			if err != nil {
				return err
			}

			report.Write(out, alg.String(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "fcfs", "Algorithm (fcfs, sjn, rr, rm, edf)")
	flags.bind(cmd)

	return cmd
}
