package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"ticksched/internal/job"
)

func newGenerateCmd() *cobra.Command {
	var flags genFlags
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random workload as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg
			flags.apply(cmd, &c)

			g := job.NewGenerator(c.Generator.Difficulty, c.Generator.Seed, c.Generator.Periodic)
			tasks := g.Generate()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := job.WriteYAML(w, tasks); err != nil {
				return err
			}

			logger.Info("workload written", "tasks", len(tasks), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	flags.bind(cmd)

	return cmd
}
