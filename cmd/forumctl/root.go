package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Gravitalia/forum/client"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apiURL      string
	language    string
	sessionPath string

	api     *client.Client
	session client.Session
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "forumctl [command] [flags]",
	Short: "Read and write on the multilingual forum",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if sessionPath == "" {
			if sessionPath, err = client.SessionPath(); err != nil {
				return err
			}
		}

		if session, err = client.LoadSession(sessionPath); err != nil {
			return err
		}

		api = client.New(apiURL)
		session.Apply(api)

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURL, "api", env("FORUM_API_URL", client.DefaultURL), "forum API URL")
	RootCmd.PersistentFlags().StringVar(&language, "lang", "", "language posts are translated into (default: preferred language)")
	RootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "session file (default: user config dir)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		outputErrorAndExit("%v", err)
	}
}

// readerLanguage is the language texts are shown in
func readerLanguage() string {
	if language != "" {
		return language
	}
	if session.Token != "" {
		return session.Language()
	}
	return client.SystemLanguage()
}

func timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Minute)
}

func success(msg string, args ...any) {
	fmt.Println("✅ " + color.New(color.Bold, color.FgHiGreen).Sprintf(msg, args...))
}

func warn(msg string, args ...any) {
	fmt.Fprintln(os.Stderr, "⚠️  "+color.New(color.FgHiYellow).Sprintf(msg, args...))
}

func outputErrorAndExit(msg string, args ...any) {
	fmt.Fprintln(os.Stderr, "🚨 "+color.New(color.Bold, color.FgHiRed).Sprintf(msg, args...))
	os.Exit(1)
}

func env(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
