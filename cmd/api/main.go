package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tasklist/core/cmd/api/commands"
)

// @title Tasklist API
// @version 1.0
// @description Personal task tracking API

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasklist",
		Short: "Tasklist API Server",
		Long:  `Tasklist is a personal task tracking service: accounts, login and per-user task management.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
