package main

import (
	"encoding/json"
	"fmt"

	"github.com/konveyor/termbar/capability"
	"github.com/konveyor/termbar/progress/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

type capsReport struct {
	capability.Capabilities `yaml:",inline"`
	Profile                 string `json:"profile" yaml:"profile"`
}

func capsCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print the terminal capabilities detected for standard output",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			log := g.logger(c.ErrOrStderr())
			out := c.OutOrStdout()

			caps := capability.Detect(out)
			report := capsReport{
				Capabilities: caps,
				Profile:      render.SelectProfile(caps.Unicode, caps.Color).String(),
			}
			log.V(1).Info("detected terminal capabilities", "profile", report.Profile)

			var data []byte
			var err error
			switch format {
			case "json":
				data, err = json.MarshalIndent(report, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(report)
			default:
				return fmt.Errorf("unknown output format %q, must be yaml or json", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode capabilities: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
