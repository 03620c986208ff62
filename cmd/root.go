package cmd

import (
	"fmt"
	"os"

	"github.com/lukman83/vinted-relist/config"
	"github.com/lukman83/vinted-relist/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vinted-relist",
	Short: "Vinted Relist - duplicate and relist marketplace listings",
	Long:  "A CLI tool and MCP server for saving Vinted listings as reusable templates and relisting them via the form or the private API.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("base-url", "", "Marketplace origin (default https://www.vinted.fr)")
	rootCmd.PersistentFlags().String("browser-url", "", "DevTools URL of a running browser to attach to")
	rootCmd.PersistentFlags().String("user-data-dir", "", "Browser profile dir carrying the logged-in session")
	rootCmd.PersistentFlags().Bool("headed", false, "Run the browser with a visible window")
	rootCmd.PersistentFlags().String("delay-profile", "normal", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().String("templates-file", "", "Path of the template store JSON file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("browser-url"); v != "" {
		cfg.BrowserURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("user-data-dir"); v != "" {
		cfg.UserDataDir = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("headed"); v {
		cfg.Headless = false
	}
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("templates-file"); v != "" {
		cfg.TemplateFile = v
	}

	logger = buildLogger()
}

func buildLogger() *zap.Logger {
	level := zap.WarnLevel
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = zap.DebugLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// buildApp wires the application from the resolved config.
func buildApp() (*app.App, error) {
	return app.New(cfg, logger)
}
