package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/reel"
)

var (
	evalNode     string
	evalProperty string
	evalTimes    []float64
	evalJob      string
)

// evalJobFile is the YAML batch format for --job: a list of property
// queries, each sampled at several times.
type evalJobFile struct {
	Queries []evalQuery `yaml:"queries"`
}

type evalQuery struct {
	Node     string    `yaml:"node"`
	Property string    `yaml:"property"`
	Times    []float64 `yaml:"times"`
}

var evalCmd = &cobra.Command{
	Use:   "eval <project.json>",
	Short: "Evaluate node properties at points in time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := reel.LoadProjectFile(args[0])
		if err != nil {
			return err
		}

		var queries []evalQuery
		if evalJob != "" {
			data, err := os.ReadFile(evalJob)
			if err != nil {
				return err
			}
			var job evalJobFile
			if err := yaml.Unmarshal(data, &job); err != nil {
				return fmt.Errorf("parsing job file: %w", err)
			}
			queries = job.Queries
		} else {
			if evalNode == "" || evalProperty == "" {
				return fmt.Errorf("either --job or both --node and --property are required")
			}
			queries = []evalQuery{{Node: evalNode, Property: evalProperty, Times: evalTimes}}
		}

		props := reel.NewPropertyEvaluators(nil)
		fps := 0.0
		if len(p.Compositions) > 0 {
			fps = p.Compositions[0].FPS
		}

		for _, q := range queries {
			id, err := uuid.Parse(q.Node)
			if err != nil {
				return fmt.Errorf("query node %q: %w", q.Node, err)
			}
			prop, err := findProperty(p, id, q.Property)
			if err != nil {
				return err
			}
			times := q.Times
			if len(times) == 0 {
				times = []float64{0}
			}
			for _, t := range times {
				info := reel.EvalInfo{Time: t, FPS: fps}
				if fps > 0 {
					info.Frame = int(t * fps)
				}
				v := props.Evaluate(prop, info)
				out, err := v.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Printf("%s.%s @ %g = %s\n", q.Node, q.Property, t, out)
			}
		}
		return nil
	},
}

func findProperty(p *reel.Project, id uuid.UUID, name string) (*reel.Property, error) {
	var props *reel.PropertyMap
	if c, ok := p.Clip(id); ok {
		props = c.Properties
	} else if g, ok := p.GraphNode(id); ok {
		props = g.Properties
	} else {
		return nil, fmt.Errorf("node %s not found or has no properties", id)
	}
	prop, ok := props.Get(name)
	if !ok {
		return nil, fmt.Errorf("node %s has no property %q", id, name)
	}
	return prop, nil
}

func init() {
	evalCmd.Flags().StringVar(&evalNode, "node", "", "node id to evaluate")
	evalCmd.Flags().StringVar(&evalProperty, "property", "", "property name")
	evalCmd.Flags().Float64SliceVar(&evalTimes, "time", nil, "time in seconds (repeatable)")
	evalCmd.Flags().StringVar(&evalJob, "job", "", "YAML job file with batch queries")
	rootCmd.AddCommand(evalCmd)
}
