package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a func() *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().session.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			u := a().session.User()
			fmt.Printf("Logged in as %s\n", u.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a func() *app) *cobra.Command {
	var password, name string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().session.Register(cmd.Context(), args[0], password, name); err != nil {
				return err
			}
			fmt.Printf("Registered %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a().session.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := a().session.User()
			if u == nil {
				fmt.Println("Not logged in")
				return nil
			}
			if u.Name != "" {
				fmt.Printf("%s <%s>\n", u.Name, u.Email)
			} else {
				fmt.Println(u.Email)
			}
			return nil
		},
	}
}
