package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"signify/internal/api"
	"signify/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the Signify backend",
	Long: `Logs in as an administrator and stores the session locally.

The password is read from the terminal when not passed via --password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			fmt.Print("Email: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading email: %w", err)
			}
			email = strings.TrimSpace(line)
		}

		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = string(raw)
		}

		auth, err := client.Login(context.Background(), api.Credentials{
			Email:    email,
			Password: password,
		})
		if err != nil {
			if apiErr := api.AsError(err); apiErr != nil {
				return fmt.Errorf("%s", apiErr.Message)
			}
			return err
		}

		err = sessions.Save(session.Session{
			Token: auth.AccessToken,
			Admin: session.Admin{
				AdminID: auth.Admin.AdminID,
				Email:   auth.Admin.Email,
				Name:    auth.Admin.Name,
			},
			LoginTime: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", auth.Admin.Name, auth.Admin.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sessions.Authenticated() {
			fmt.Println("Not logged in.")
			return nil
		}
		if err := sessions.Clear(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := sessions.Current()
		if sess == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", sess.Admin.Name, sess.Admin.Email)
		if !sess.LoginTime.IsZero() {
			fmt.Printf("Logged in since %s\n", sess.LoginTime.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin password (prompted when omitted)")
}
