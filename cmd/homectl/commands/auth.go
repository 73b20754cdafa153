package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/homelink/smarthome-system/internal/client"
)

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Log in and store the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			account, err := gateway.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s <%s>\n", account.FullName, account.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the local session and revoke the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !session.IsLoggedIn() {
				fmt.Println("Not logged in")
				return nil
			}
			if user := session.User(); user != nil {
				fmt.Printf("Logged in as %s <%s>\n", user.FullName, user.Email)
			} else {
				fmt.Println("Logged in")
			}
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var fullName, phone, password string

	cmd := &cobra.Command{
		Use:   "register [email]",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			err := gateway.Register(cmd.Context(), client.RegisterInput{
				FullName: fullName,
				Email:    args[0],
				Phone:    phone,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Println("Account created. Log in with 'homectl login", args[0]+"'")
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
