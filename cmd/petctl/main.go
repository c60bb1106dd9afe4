package main

import (
	"fmt"
	"os"
	"time"

	"pet-tracker/internal/client"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	userFlag  string
	tokenFlag string
	tzFlag    string
	rootCmd   = &cobra.Command{
		Use:          "petctl",
		Short:        "CLI client for the pet-tracker API",
		SilenceUsage: true,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", envOr("PETCTL_API", "http://localhost:8080"), "pet-tracker base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", os.Getenv("PETCTL_USER"), "User ID (dev auth, X-Debug-User-ID)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", os.Getenv("PETCTL_TOKEN"), "Bearer token (overrides --user)")
	rootCmd.PersistentFlags().StringVar(&tzFlag, "tz", envOr("TIMEZONE", "UTC"), "Time zone for calendar dates")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (*client.Client, error) {
	if userFlag == "" && tokenFlag == "" {
		return nil, fmt.Errorf("--user or --token required")
	}
	return client.New(client.Options{
		BaseURL:     apiFlag,
		Token:       tokenFlag,
		DebugUserID: userFlag,
		Timeout:     10 * time.Second,
	})
}

func location() (*time.Location, error) {
	loc, err := time.LoadLocation(tzFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz %q: %w", tzFlag, err)
	}
	return loc, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
