package cli

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/color-game/palettetool/api"
	"github.com/color-game/palettetool/assembler"
	"github.com/color-game/palettetool/datastore"
	"github.com/color-game/palettetool/migrations"
	"github.com/color-game/palettetool/scheduler"
)

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the palette HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := LoadConfig()
			if port != "" {
				config.HTTPPort = port
			}
			if config.JwtSecret == defaultJwtSecret && !config.DevMode {
				return errors.New("JWT_SECRET must be set outside dev mode")
			}
			return serve(config)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen address (default $HTTP_PORT)")
	return cmd
}

func openDatabase(config api.Config) (*sql.DB, error) {
	switch config.DatabaseType {
	case datastore.DriverPostgres:
		connStr := datastore.BuildDBConnStr(
			config.DatabaseHost,
			config.DatabasePassword,
			config.DatabaseUser,
			config.DatabaseName,
			config.SSLMode,
		)
		return datastore.NewDB(config.DatabaseType, connStr)
	default:
		connStr, err := datastore.BuildSQLiteConnStr(config.DatabasePath)
		if err != nil {
			return nil, err
		}
		return datastore.NewDB(config.DatabaseType, connStr)
	}
}

func serve(config api.Config) error {
	dbConn, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	log.Println("Running database migrations...")
	if err := migrations.RunMigrations(dbConn); err != nil {
		return err
	}

	paletteRepo, err := datastore.NewPaletteDatabase(dbConn)
	if err != nil {
		return err
	}

	app := &api.Application{
		Config:      config,
		PaletteRepo: paletteRepo,
		Assembler:   assembler.New(config.ConversionTool),
		Clock:       time.Now,
	}

	var hooks []func()
	if config.RetentionDays > 0 {
		pruner := scheduler.NewScheduler(paletteRepo, time.Duration(config.RetentionDays)*24*time.Hour)
		pruner.Start()
		hooks = append(hooks, pruner.Stop)
	}

	log.Println("Palette Tool API Starting...")
	return app.Serve(http.NewServeMux(), hooks...)
}
