package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobrec/internal/client"
	"jobrec/internal/logger"
)

const app = "jobrec-ui"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "jobrec-ui submits resumes and shows the latest job recommendations",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"mcp-url":     "MCP_URL",
		"backend-url": "BACKEND_URL",
		"timeout":     "UI_TIMEOUT",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	flags := rootCmd.PersistentFlags()
	flags.String("mcp-url", "http://localhost:8000", "analysis service base URL")
	flags.String("backend-url", "http://localhost:8001", "relay service base URL")
	flags.Duration("timeout", 2*time.Minute, "request timeout")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")

	for _, name := range []string{"mcp-url", "backend-url", "timeout", "debug", "json"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

func newClient() *client.Client {
	return client.New(viper.GetString("mcp-url"), viper.GetString("backend-url"), viper.GetDuration("timeout"))
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}
