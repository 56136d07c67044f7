package cmd

import (
	"github.com/spf13/cobra"

	"github.com/praveenr14083/studygen/internal/insights"
	"github.com/praveenr14083/studygen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.Server.Addr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		secret := a.cfg.Server.SessionSecret
		if secret == "" {
			a.logger.Warn("server.session_secret is not set; sessions will not survive a restart")
		}

		srv := server.New(
			a.orch,
			insights.NewAnalyst(a.provider, insights.DefaultConfig()),
			server.SessionKey(secret),
			a.logger,
		)
		return srv.Run(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
