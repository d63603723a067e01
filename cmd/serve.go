package cmd

import (
	"github.com/gaurav-prasanna/docmind/core/session"
	"github.com/gaurav-prasanna/docmind/server"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parse and chat API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if flagAddr != "" {
			addr = flagAddr
		}
		if !flagVerbose {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := server.New(newPipeline(false), newAssistant(), session.NewStore(cfg.Server.SessionTTL), log.Logger)
		return srv.Run(cmd.Context(), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
}
