package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduling HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				c.cfg.Server.Addr = addr
			}
			return c.app.Serve(cmd.Context(), c.cfg)
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address, overrides server.addr and PORT")
	return cmd
}
