package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var gf grammarFlags
	var output string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a DCG into transducers and save them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("missing output file (-o)")
			}
			g, err := gf.load()
			if err != nil {
				return err
			}
			if err := g.SaveFile(output); err != nil {
				return fmt.Errorf("save grammar: %w", err)
			}
			fp, err := g.Fingerprint()
			if err != nil {
				return err
			}
			pterm.Info.Println(fmt.Sprintf("compiled %d root categories to %s", len(g.Categories()), output))
			pterm.Info.Println(fmt.Sprintf("fingerprint %s", fp))
			return nil
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the compiled grammar to")

	return cmd
}
