package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/homelink/smarthome-system/internal/client"
	"github.com/homelink/smarthome-system/internal/client/store"
	"github.com/homelink/smarthome-system/internal/infrastructure/config"
	"github.com/homelink/smarthome-system/pkg/logger"
)

var (
	home   string
	apiURL string

	session *client.SessionService
	gateway *client.Gateway
)

func Execute() error {
	root := &cobra.Command{
		Use:   "homectl",
		Short: "Control your smart home from the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient(cmd.Context())
			if err != nil {
				return err
			}

			// Flags win over the environment.
			if home == "" {
				home = cfg.StateDir
			}
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".homectl")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if apiURL == "" {
				apiURL = cfg.APIURL
			}

			log := logger.Init(logger.Options{Level: cfg.LogLevel})

			fs := store.NewFileStore(home)
			session = client.NewSessionService(fs, log)
			session.Restore()
			gateway = client.NewGateway(client.Config{
				BaseURL: apiURL,
				Timeout: cfg.Timeout,
				Logger:  log,
			}, session)

			showIntroOnce(fs)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.homectl)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (default $SMARTHOME_API_URL)")

	root.AddCommand(
		loginCmd(), logoutCmd(), statusCmd(), registerCmd(),
		homesCmd(), homeCmd(), areaCmd(), deviceCmd(), toggleCmd(),
		profileCmd(),
	)
	return root.Execute()
}

// showIntroOnce prints a short orientation on the very first run.
func showIntroOnce(fs *store.FileStore) {
	seen, err := fs.IntroSeen()
	if err != nil || seen {
		return
	}
	fmt.Println("Welcome to homectl. Run 'homectl register' to create an account,")
	fmt.Println("then 'homectl login <email>' to connect to your smart home.")
	fmt.Println()
	_ = fs.SetIntroSeen(true)
}
