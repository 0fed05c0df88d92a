package main

import (
	"fmt"

	"github.com/Gravitalia/forum/client"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in, creating the user when it does not exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		login, err := api.Login(ctx, args[0])
		if err != nil {
			return err
		}

		session = client.Session{User: login.User, Token: login.Token}
		if err = session.Save(sessionPath); err != nil {
			return err
		}

		success("Welcome, %s!", login.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ClearSession(sessionPath); err != nil {
			return err
		}

		success("Logged out successfully")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		user, err := api.Me(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s <%s>\n", color.New(color.Bold, color.FgHiGreen).Sprint(user.Username), user.Email)
		fmt.Printf("Preferred language: %s\n", color.New(color.FgHiCyan).Sprint(user.PreferredLanguage))
		if user.JoinDate != "" {
			fmt.Printf("Joined: %s\n", user.JoinDate)
		}
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings <language>",
	Short: "Change the preferred language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		user, err := api.SetPreferredLanguage(ctx, args[0])
		if err != nil {
			return err
		}

		if session.Token != "" {
			session.User = user
			if err = session.Save(sessionPath); err != nil {
				return err
			}
		}

		name := user.PreferredLanguage
		if languages, err := api.Languages(ctx); err == nil && languages[name] != "" {
			name = languages[name]
		}

		success("Language changed to %s", name)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, settingsCmd)
}
