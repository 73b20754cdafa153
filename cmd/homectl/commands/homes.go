package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func homesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "homes",
		Short: "List homes with their areas and devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			homes, err := gateway.GetHomes(cmd.Context())
			if err != nil {
				return err
			}
			if len(homes) == 0 {
				fmt.Println("No homes yet. Create one with 'homectl home create <name>'")
				return nil
			}

			for _, h := range homes {
				fmt.Printf("%s  %s (%s)\n", h.ID, h.HomeName, h.Location)
				for _, a := range h.Area {
					fmt.Printf("  %s  %s\n", a.ID, a.Name)
					for _, e := range a.Equipment {
						state := "off"
						if e.TurnOn {
							state = "on"
						}
						fmt.Printf("    %s  %-20s %s [%s]\n", e.ID, e.Title, state, e.Status)
					}
				}
			}
			return nil
		},
	}
}

func homeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Manage homes",
	}

	var location string
	create := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := gateway.CreateHome(cmd.Context(), args[0], location)
			if err != nil {
				return err
			}
			fmt.Printf("Created home %s (%s)\n", h.HomeName, h.ID)
			return nil
		},
	}
	create.Flags().StringVar(&location, "location", "", "home location")

	var editName, editLocation string
	edit := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := gateway.EditHome(cmd.Context(), args[0], editName, editLocation)
			if err != nil {
				return err
			}
			fmt.Printf("Updated home %s\n", h.ID)
			return nil
		},
	}
	edit.Flags().StringVar(&editName, "name", "", "new home name")
	edit.Flags().StringVar(&editLocation, "location", "", "new location")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a home and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := gateway.DeleteHome(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Msg)
			return nil
		},
	}

	cmd.AddCommand(create, edit, del)
	return cmd
}

func areaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Manage areas within a home",
	}

	create := &cobra.Command{
		Use:   "create [home-id] [name]",
		Short: "Add an area to a home",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := gateway.CreateArea(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Created area %s (%s)\n", a.Name, a.ID)
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename an area",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := gateway.EditArea(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed area %s to %s\n", a.ID, a.Name)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an area (devices are detached, not removed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := gateway.DeleteArea(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Msg)
			return nil
		},
	}

	cmd.AddCommand(create, rename, del)
	return cmd
}
