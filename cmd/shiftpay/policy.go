package main

import (
	"github.com/spf13/cobra"

	"github.com/warp/shift-pay/config"
	"github.com/warp/shift-pay/pay"
)

func newPolicyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the pay policy",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the active policy as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := a.calculator()
			if err != nil {
				return err
			}
			data, err := config.MarshalPolicy(calc.Policy())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default policy to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = a.settings.PolicyPath
			}
			return config.SavePolicy(path, pay.DefaultPolicy())
		},
	}
	initCmd.Flags().StringVarP(&path, "output", "o", "", "destination file (defaults to the configured policy path)")

	cmd.AddCommand(show, initCmd)
	return cmd
}
