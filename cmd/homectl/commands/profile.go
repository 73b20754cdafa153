package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your account",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Fetch the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := gateway.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Name:  %s\nEmail: %s\nPhone: %s\n", account.FullName, account.Email, account.Phone)
			return nil
		},
	}

	var fullName, phone string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update name or phone (empty fields are left unchanged)",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := gateway.UpdateProfile(cmd.Context(), fullName, phone)
			if err != nil {
				return err
			}
			fmt.Printf("Updated profile for %s\n", account.Email)
			return nil
		},
	}
	update.Flags().StringVar(&fullName, "name", "", "new full name")
	update.Flags().StringVar(&phone, "phone", "", "new phone number")

	password := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := promptLine("Current password: ")
			if err != nil {
				return err
			}
			next, err := promptLine("New password: ")
			if err != nil {
				return err
			}
			if err := gateway.ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			fmt.Println("Password changed")
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account permanently",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm, err := promptLine("Type 'delete' to confirm: ")
			if err != nil {
				return err
			}
			if confirm != "delete" {
				fmt.Println("Aborted")
				return nil
			}
			if err := gateway.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Account deleted")
			return nil
		},
	}

	cmd.AddCommand(show, update, password, del)
	return cmd
}
