/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/logging"
	"solana-lifecycle/internal/svc"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	cfgFile    string
	rpcURL     string
	wsURL      string
	commitment string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "solana-lifecycle",
	Short: "solana transaction lifecycle workflows",
	Long: `Build instructions, assemble, estimate, sign, submit and confirm
transactions against a Solana cluster, then read the resulting state.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "rpc endpoint, overrides Cluster.RPC")
	rootCmd.PersistentFlags().StringVar(&wsURL, "ws", "", "websocket endpoint, overrides Cluster.WS")
	rootCmd.PersistentFlags().StringVar(&commitment, "commitment", "", "processed|confirmed|finalized, overrides Cluster.Commitment")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "no banner")
}

// loadConfig reads .env and the config file, then applies flag overrides.
func loadConfig() config.Config {
	godotenv.Load()

	c := config.Default()
	if cfgFile != "" {
		c = config.Config{}
		conf.MustLoad(cfgFile, &c)
		if c.Rest.Port == 0 {
			c.Rest = config.DefaultRest()
		}
	}
	if rpcURL != "" {
		c.Cluster.RPC = rpcURL
	}
	if wsURL != "" {
		c.Cluster.WS = wsURL
	}
	if commitment != "" {
		c.Cluster.Commitment = commitment
	}
	logx.MustSetup(c.Log.LogConf)
	logging.Install(c.Log.File)
	return c
}

func printBanner(c config.BannerConf) {
	if quiet || c.Text == "" {
		return
	}
	figure.NewColorFigure(c.Text, c.FontName, c.Color, true).Print()
	fmt.Println()
}

// setup loads the configuration and wires the services for a command.
func setup() *svc.ServiceContext {
	c := loadConfig()
	printBanner(c.Banner)
	return svc.NewServiceContext(c)
}
