package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reel"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project.json>",
	Short: "Check referential integrity and graph acyclicity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := reel.LoadProjectFile(args[0])
		if err != nil {
			return err
		}

		errs := p.Validate()
		if _, err := reel.TopologicalOrder(p); err != nil {
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			fmt.Println("ok")
			return nil
		}
		for _, e := range errs {
			fmt.Printf("invalid: %v\n", e)
		}
		return errors.New("project is invalid")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
