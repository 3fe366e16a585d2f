package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/elores-client/internal/render"
	"github.com/noah-isme/elores-client/pkg/security"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print the server welcome and the account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := login(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if welcome := application.Client.Welcome(); welcome != "" {
			fmt.Fprintln(out, welcome)
		}
		fmt.Fprintln(out, render.Table(
			[]string{"ID", "Name", "Email", "Role"},
			[][]string{{fmt.Sprint(user.ID), user.FullName(), user.Email, user.TypeName}},
		))
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the server answers a PING after login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := login(cmd.Context()); err != nil {
			return err
		}
		start := time.Now()
		if err := application.Auth.Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pong from %s in %s\n", application.Client.Addr(), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:         "hash-password [password]",
	Short:       "Print the bcrypt hash the client sends for a password",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, _ := cmd.Flags().GetInt("cost")
		hashed, err := security.HashWithCost(args[0], cost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hashed)
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().Int("cost", security.DefaultCost, "bcrypt cost")
}
