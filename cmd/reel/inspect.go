package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reel"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project.json>",
	Short: "Summarize a project file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := reel.LoadProjectFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("project: %s\n", p.Name)
		fmt.Printf("assets: %d, compositions: %d, nodes: %d, connections: %d\n",
			len(p.Assets), len(p.Compositions), len(p.Nodes), len(p.Connections))

		for _, comp := range p.Compositions {
			fmt.Printf("\ncomposition %q  %dx%d @ %g fps, %gs\n",
				comp.Name, comp.Width, comp.Height, comp.FPS, comp.Duration)
			if root, ok := p.Track(comp.RootTrackID); ok {
				printTrack(p, root, "  ")
			}
		}
		return nil
	},
}

func printTrack(p *reel.Project, t *reel.Track, indent string) {
	fmt.Printf("%strack %q (%d children)\n", indent, t.Name, len(t.ChildIDs))
	for _, id := range t.ChildIDs {
		n, ok := p.Node(id)
		if !ok {
			fmt.Printf("%s  <missing %s>\n", indent, id)
			continue
		}
		switch node := n.(type) {
		case *reel.Track:
			printTrack(p, node, indent+"  ")
		case *reel.Clip:
			fmt.Printf("%s  clip %q [%s] frames %d..%d\n",
				indent, node.Name, node.Kind, node.In, node.Out)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
