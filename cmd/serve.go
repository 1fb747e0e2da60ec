package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spacey-learn/spacey/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson over HTTP and websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		addr, _ := cmd.Flags().GetString("addr")
		srv := server.New(server.Options{
			Catalog: e.catalog,
			Store:   e.store,
			Config:  e.config,
			Logger:  e.log,
		})
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
