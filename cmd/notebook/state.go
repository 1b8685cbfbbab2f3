package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

func newStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the internal state of the service and its store as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService()
			if err != nil {
				return err
			}
			defer a.closeService(svc)

			state := map[string]any{}
			for _, c := range []any{svc, svc.Store()} {
				name := "unknown"
				if comp, ok := c.(introspection.Component); ok {
					name = comp.ComponentType()
				}
				if intro, ok := c.(introspection.Introspectable); ok {
					state[name] = intro.State()
				} else {
					state[name] = nil
				}
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(state)
		},
	}
}
