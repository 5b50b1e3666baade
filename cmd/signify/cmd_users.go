package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"signify/cmd/signify/ui"

	"github.com/spf13/cobra"
)

var usersExportPath string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage field volunteer accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		users, err := client.Users(context.Background())
		if err != nil {
			return err
		}
		table := ui.NewTable("Users", "ID", "Name", "Email", "Location", "Status")
		for _, u := range users {
			status := "active"
			if !u.IsActive {
				status = "inactive"
			}
			table.AddRow(u.UserID, ui.Truncate(u.Name, 24), ui.Truncate(u.Email, 30),
				ui.Truncate(u.District+"/"+u.Sector, 16), status)
		}
		fmt.Println(table.View(ui.DefaultStyles()))
		return nil
	},
}

var usersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export users to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		users, err := client.Users(context.Background())
		if err != nil {
			return err
		}

		f, err := os.Create(usersExportPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", usersExportPath, err)
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write([]string{"Name", "Email", "Phone", "Country", "District", "Sector", "Active", "Created"}); err != nil {
			return err
		}
		for _, u := range users {
			active := "no"
			if u.IsActive {
				active = "yes"
			}
			record := []string{u.Name, u.Email, u.PhoneNumber, u.Country, u.District, u.Sector, active, u.CreatedAt}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		fmt.Printf("Exported %d users to %s\n", len(users), usersExportPath)
		return nil
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate [user-id]",
	Short: "Deactivate a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := client.DeactivateUser(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deactivated %s\n", args[0])
		return nil
	},
}

func init() {
	usersExportCmd.Flags().StringVar(&usersExportPath, "out", "signify-users.csv", "output file")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersExportCmd)
	usersCmd.AddCommand(usersDeactivateCmd)
}
