// impilo es el CLI de operación contra el backend Impilo: sesión, usuarios,
// ubicaciones y stock. Guarda el token de sesión en IMPILO_TOKEN_FILE
// (por defecto $XDG_CONFIG_HOME/impilo/token).
//
// Uso: impilo login -u tmoyo; impilo stock drugs --size 20
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/jhoicas/impilo-stock/internal/application/auth"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/config"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

// cli estado compartido por los comandos; se arma en PersistentPreRunE.
type cli struct {
	out     io.Writer
	verbose bool
	json    bool
	timeout time.Duration

	cfg      *config.Config
	log      *logger.Logger
	store    *impilo.FileTokenStore
	services *impilo.Services
	auth     *auth.AuthUseCase
}

func (a *cli) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Env: "development", Level: level, Service: "impilo", Output: os.Stderr})

	store, err := impilo.NewFileTokenStore(cfg.API.TokenFile)
	if err != nil {
		return err
	}
	a.store = store
	timeout := cfg.API.Timeout
	if a.timeout > 0 {
		timeout = a.timeout
	}
	client := impilo.NewClient(impilo.Config{BaseURL: cfg.API.BaseURL, Timeout: timeout, Token: cfg.API.Token},
		impilo.WithLogger(a.log.Zerolog()))
	a.services = impilo.NewServices(client, store)
	a.auth = auth.NewAuthUseCase(a.services.Auth, time.Now)
	return a.auth.Restore()
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &cli{out: out}
	root := &cobra.Command{
		Use:           "impilo",
		Short:         "Operación del backend Impilo Stock Management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log de cada petición al backend (stderr)")
	root.PersistentFlags().BoolVar(&a.json, "json", false, "salida JSON en lugar de tablas")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "timeout por petición (por defecto IMPILO_API_TIMEOUT_SECONDS)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newValidateCmd(a),
		newRegisterCmd(a),
		newResetPasswordCmd(a),
		newUsersCmd(a),
		newLocationsCmd(a),
		newStockCmd(a),
		newFacilityStockCmd(a),
	)
	return root
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+describeError(err))
		os.Exit(1)
	}
}
