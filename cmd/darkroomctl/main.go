package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"github.com/darkroom-cms/darkroom/cmd/darkroom/config"
	"github.com/darkroom-cms/darkroom/internal/version"
	"github.com/darkroom-cms/darkroom/storage/model"
)

var rootCmd = &cobra.Command{
	Use:     "darkroomctl",
	Short:   "darkroomctl can help you manage your darkroom server",
	Long:    "darkroomctl can help you manage your darkroom server",
	Version: version.VERSION,
}

var configFile string
var usersStorage model.UsersStore
var contentStorage model.ContentStore

func loadConfig() error {
	config.Load(configFile)
	log.Println("Loaded Config")
	c := config.Get()

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}
	usersStorage = backs.Users
	contentStorage = backs.Content
	return nil
}

var bootstrapUsername string
var bootstrapName string
var bootstrapPassword string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create or refresh the superadmin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		user, err := usersStorage.EnsureSuperadmin(bootstrapUsername, bootstrapName, bootstrapPassword)
		if err != nil {
			return err
		}
		fmt.Printf("superadmin '%s' ready (id %s)\n", user.Username, user.ID)
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage admin console accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		users, err := usersStorage.List()
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\t%s\t%v\n", u.ID, u.Username, u.Role, u.Permissions)
		}
		return nil
	},
}

var usersResetCmd = &cobra.Command{
	Use:   "reset <username|id>",
	Short: "Reset an account's password to the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		// Accept the username for convenience, fall back to treating the
		// argument as an id.
		id := args[0]
		if user, err := usersStorage.GetByUsername(args[0]); err == nil {
			id = user.ID
		}
		if err := usersStorage.ResetPassword(id); err != nil {
			return err
		}
		fmt.Println("password reset")
		return nil
	},
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage site content entries",
}

var contentSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a content entry; the value may be JSON or a plain string",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		key, value := args[0], args[1]
		if json.Valid([]byte(value)) {
			return contentStorage.Set(key, datatypes.JSON(value))
		}
		return contentStorage.SetAny(key, value)
	},
}

var contentDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a content entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return contentStorage.Delete(args[0])
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "the config file to use")
	bootstrapCmd.Flags().StringVar(&bootstrapUsername, "username", "admin", "superadmin username")
	bootstrapCmd.Flags().StringVar(&bootstrapName, "name", "", "superadmin display name")
	bootstrapCmd.Flags().StringVar(&bootstrapPassword, "password", "", "superadmin password")
	_ = bootstrapCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(usersListCmd, usersResetCmd)
	contentCmd.AddCommand(contentSetCmd, contentDeleteCmd)
	rootCmd.AddCommand(bootstrapCmd, usersCmd, contentCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
