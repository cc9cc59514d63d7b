package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/mowradar/internal/pipeline"
)

var promptFlags requestFlags

var promptCmd = &cobra.Command{
	Use:   "prompt [address]",
	Short: "Show the prompt a pitch would use, without calling the text generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := promptFlags.request(args)
		if err != nil {
			return err
		}

		p, err := initPipeline(cfg, "preview")
		if err != nil {
			return err
		}

		res, err := p.Preview(cmd.Context(), req)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), pipeline.Describe(err))
			return err
		}

		return writeOutput(cmd.OutOrStdout(), promptFlags.format, res, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, res.Prompt)
			return err
		})
	},
}

func init() {
	promptFlags.register(promptCmd, true)
	rootCmd.AddCommand(promptCmd)
}
