package cli

import (
	"github.com/machaira/blog/internal/app"
	"github.com/spf13/cobra"
)

func newServeCommand(st *state) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				st.cfg.Server.ListenAddr = listen
			}
			log := st.logger("blog")

			srv, err := app.New(cmd.Context(), st.cfg, log)
			if err != nil {
				log.Error("Failed to start: %v", err)
				return err
			}
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides server.listen_addr")

	return cmd
}
