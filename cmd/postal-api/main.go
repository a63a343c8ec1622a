package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodpocztowy/internal/config"
	"github.com/kodpocztowy/internal/db"
	"github.com/kodpocztowy/internal/housenumber"
	"github.com/kodpocztowy/internal/importer"
	"github.com/kodpocztowy/internal/store"
	"github.com/kodpocztowy/internal/web"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "postal-api",
		Short: "Polish postal code lookup service",
		Long:  `Address-to-postal-code lookup for Poland, with house-number range matching`,
	}

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createInitDBCmd())
	rootCmd.AddCommand(createImportCmd())
	rootCmd.AddCommand(createNormalizeDBCmd())
	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createMatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// mustConnect opens the database connection or exits.
func mustConnect() *db.Connection {
	conn, err := db.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return conn
}

// createServeCmd creates the HTTP server command.
func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the postal code API server",
		Run: func(cmd *cobra.Command, args []string) {
			conn := mustConnect()
			defer conn.Close()

			webConfig := web.DefaultConfig()
			webConfig.Server.Host = config.GetEnv("WEB_HOST", webConfig.Server.Host)
			webConfig.Server.Port = config.GetEnvInt("WEB_PORT", webConfig.Server.Port)
			webConfig.CORS.AllowOrigin = config.GetEnv("CORS_ALLOW_ORIGIN", webConfig.CORS.AllowOrigin)
			webConfig.Search.MaxLimit = config.GetEnvInt("SEARCH_MAX_LIMIT", webConfig.Search.MaxLimit)

			fmt.Println("=== Polish Postal Code API ===")
			fmt.Printf("Database: %s\n", config.GetEnv("PGDATABASE", "postal_codes"))

			server := web.NewServer(webConfig, conn.DB)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}
}

// createInitDBCmd creates the schema initialization command.
func createInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the postal_codes table and indexes",
		Run: func(cmd *cobra.Command, args []string) {
			conn := mustConnect()
			defer conn.Close()

			if err := store.New(conn.DB).Init(); err != nil {
				log.Fatalf("Failed to initialize database: %v", err)
			}
			fmt.Println("Database schema initialized")
		},
	}
}

// createImportCmd creates the CSV import command.
func createImportCmd() *cobra.Command {
	var delimiter string

	importCmd := &cobra.Command{
		Use:   "import [filename]",
		Short: "Import postal records from CSV",
		Long:  `Import the national postal record CSV (postal_code;city;street;house_numbers;municipality;county;province)`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			conn := mustConnect()
			defer conn.Close()

			ci := importer.NewCSVImporter(conn.DB)
			if delimiter != "" {
				ci.Delimiter = rune(delimiter[0])
			}

			if _, err := ci.Import(args[0]); err != nil {
				log.Fatalf("Failed to import postal records: %v", err)
			}
		},
	}

	importCmd.Flags().StringVar(&delimiter, "delimiter", ";", "CSV field delimiter")
	return importCmd
}

// createNormalizeDBCmd creates the normalized-column backfill command.
func createNormalizeDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-db",
		Short: "Backfill diacritic-normalized search columns",
		Run: func(cmd *cobra.Command, args []string) {
			conn := mustConnect()
			defer conn.Close()

			if _, err := importer.NewCSVImporter(conn.DB).NormalizeExisting(); err != nil {
				log.Fatalf("Failed to normalize records: %v", err)
			}
		},
	}
}

// createPingCmd creates a command to test database connectivity.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn := mustConnect()
			defer conn.Close()

			fmt.Println("Database connection successful!")

			count, err := store.New(conn.DB).Count()
			if err != nil {
				log.Printf("Error counting postal records: %v", err)
				return
			}
			fmt.Printf("Postal records loaded: %d\n", count)
		},
	}
}

// createMatchCmd evaluates the range matcher from the shell, for debugging
// source data. The exit status reflects the result.
func createMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match [house-number] [range-pattern]",
		Short: "Check a house number against a range pattern",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if housenumber.Matches(args[0], args[1]) {
				fmt.Printf("%q matches %q\n", args[0], args[1])
				return
			}
			fmt.Printf("%q does not match %q\n", args[0], args[1])
			os.Exit(1)
		},
	}
}
