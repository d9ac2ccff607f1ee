package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCommand() *cobra.Command {
	accountCommand := &cobra.Command{
		Use:   "account",
		Short: "Sign in and out of a vocabulary namespace",
	}

	accountCommand.AddCommand(newAccountLoginCommand())
	accountCommand.AddCommand(newAccountRegisterCommand())
	accountCommand.AddCommand(newAccountLogoutCommand())
	accountCommand.AddCommand(newAccountWhoamiCommand())

	return accountCommand
}

func newAccountLoginCommand() *cobra.Command {
	var password string

	command := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in as the demo user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			user, err := env.accounts.Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Name, user.Email)
			return nil
		},
	}
	command.Flags().StringVar(&password, "password", "", "password (not verified)")
	return command
}

func newAccountRegisterCommand() *cobra.Command {
	var password string

	command := &cobra.Command{
		Use:   "register <name> <email>",
		Short: "Create a new user and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			user, err := env.accounts.Register(ctx, args[0], args[1], password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s) with id %s\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
	command.Flags().StringVar(&password, "password", "", "password (not verified)")
	return command
}

func newAccountLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and go back to the default namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			if err := env.accounts.Logout(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newAccountWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			user, ok, err := env.accounts.Current(ctx)
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Not logged in, using user %s\n", env.cfg.User.DefaultID)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), id %s\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}
