package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homelink/smarthome-system/internal/client"
	"github.com/homelink/smarthome-system/internal/core/domain"
)

func deviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage devices",
	}

	var draft client.EquipmentDraft
	add := &cobra.Command{
		Use:   "add [home-id] [title]",
		Short: "Register a device in a home",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.HomeID = args[0]
			draft.Title = args[1]
			e, err := gateway.CreateEquipment(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Added device %s (%s)\n", e.Title, e.ID)
			return nil
		},
	}
	add.Flags().IntVar(&draft.CategoryID, "category", 0, "device category")
	add.Flags().StringVar(&draft.AreaID, "area", "", "area to place the device in")
	add.Flags().StringVar(&draft.Description, "description", "", "description")
	add.Flags().StringVar(&draft.Status, "status", "", "initial status (default active)")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Remove a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := gateway.DeleteEquipment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Msg)
			return nil
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [device-id] [on|off]",
		Short: "Turn a device on or off",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var turnOn bool
			switch args[1] {
			case "on":
				turnOn = true
			case "off":
				turnOn = false
			default:
				return fmt.Errorf("state must be 'on' or 'off', got %q", args[1])
			}

			equipment := &domain.Equipment{ID: args[0], TurnOn: !turnOn}
			result, err := gateway.ToggleDevice(cmd.Context(), equipment, turnOn)
			if err != nil {
				return err
			}
			if result.Applied {
				fmt.Printf("Device %s is now %s\n", args[0], args[1])
			}
			return nil
		},
	}
}
