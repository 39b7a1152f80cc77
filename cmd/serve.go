package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import API over HTTP",
	Long: `Serve exposes the import pipeline over HTTP:

  POST /api/import        {"mode":"url|text|photo","url":"","text":"","image":"","mediaType":""}
  POST /api/parse-recipe  {"url":""}  (structured data only)
  GET  /api/health`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.New(newImporter(), logger).ListenAndServe(ctx, cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
