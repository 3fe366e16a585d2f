package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/app"
	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/pkg/config"
	"github.com/noah-isme/elores-client/pkg/logger"
)

var (
	v           = viper.New()
	application *app.App
	logr        *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "elores",
	Short:         "Command-line client for the Elorrieta scheduling server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["offline"] == "true" {
			return nil
		}

		cfg := config.FromViper(v)
		var err error
		logr, err = logger.New(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		application, err = app.New(cmd.Context(), cfg, logr)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdown()
	},
}

func init() {
	_ = godotenv.Load()
	config.SetDefaults(v)
	v.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("host", "", "scheduling server host (SERVER_HOST)")
	flags.Int("port", 0, "scheduling server port (SERVER_PORT)")
	flags.String("log-level", "", "log level (LOG_LEVEL)")
	flags.StringP("email", "e", "", "login email (ELORES_EMAIL)")
	flags.StringP("password", "p", "", "login password (ELORES_PASSWORD)")

	bindFlag("SERVER_HOST", "host")
	bindFlag("SERVER_PORT", "port")
	bindFlag("LOG_LEVEL", "log-level")
	bindFlag("ELORES_EMAIL", "email")
	bindFlag("ELORES_PASSWORD", "password")

	rootCmd.AddCommand(
		loginCmd,
		pingCmd,
		teachersCmd,
		scheduleCmd,
		exportCmd,
		exportsCmd,
		meetingsCmd,
		studentsCmd,
		profileCmd,
		hashPasswordCmd,
	)
}

// bindFlag lets an explicitly set flag override the environment.
func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// shutdown logs out and closes the connection once per process.
func shutdown() {
	if application == nil {
		return
	}
	application.Close(context.Background())
	application = nil
	if logr != nil {
		_ = logr.Sync()
	}
}

// login authenticates with the configured credentials. Every command that
// talks to the server starts here, the process owns a single session.
func login(ctx context.Context) (*models.User, error) {
	req := models.LoginRequest{
		Email:    v.GetString("ELORES_EMAIL"),
		Password: v.GetString("ELORES_PASSWORD"),
	}
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("credentials required: pass --email and --password or set ELORES_EMAIL and ELORES_PASSWORD")
	}
	return application.Auth.Login(ctx, req)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	shutdown()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
