/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"solana-lifecycle/internal/handler"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/rest"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve derivation, account, clock and estimate queries over http",
	Run: func(cmd *cobra.Command, args []string) {
		svcCtx := setup()
		c := svcCtx.Config.Rest
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			c.Port = port
		}

		server := rest.MustNewServer(c.RestConf)
		defer server.Stop()

		handler.RegisterHandlers(server, svcCtx)

		fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "listen port, overrides Rest.Port")
}
