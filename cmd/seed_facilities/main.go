// seed_facilities completa los códigos DATIM y coordenadas de los centros de
// salud del backend a partir de un CSV exportado de DATIM.
//
// Uso: go run ./cmd/seed_facilities [--latin1] [--dry-run] facilities.csv
// Requiere IMPILO_API_BASE_URL y un token con permisos (IMPILO_API_TOKEN o el
// guardado por impilo login).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/config"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

// facilityUpdater lo que el seed necesita del backend.
type facilityUpdater interface {
	GetByID(ctx context.Context, facilityID int64) (*entity.Facility, error)
	Update(ctx context.Context, facilityID int64, in entity.Facility) (*entity.Facility, error)
}

// seed aplica las filas en orden. Un error en una fila se registra y no
// detiene el resto; devuelve cuántas se actualizaron.
func seed(ctx context.Context, svc facilityUpdater, rows []row, dryRun bool, log *logger.Logger) (int, error) {
	updated, failed := 0, 0
	for _, r := range rows {
		current, err := svc.GetByID(ctx, r.id)
		if err != nil {
			failed++
			log.Error().Err(err).Int("linea", r.line).Int64("facility_id", r.id).Msg("leer centro")
			continue
		}
		next := merge(*current, r.facility)
		if dryRun {
			log.Info().Int64("facility_id", r.id).Str("nombre", next.Name).Str("datim", next.DatimOrgID).Msg("dry-run")
			updated++
			continue
		}
		if _, err := svc.Update(ctx, r.id, next); err != nil {
			failed++
			log.Error().Err(err).Int("linea", r.line).Int64("facility_id", r.id).Msg("actualizar centro")
			continue
		}
		updated++
	}
	if failed > 0 {
		return updated, fmt.Errorf("%d filas con error", failed)
	}
	return updated, nil
}

func main() {
	var latin1, dryRun bool
	cmd := &cobra.Command{
		Use:          "seed_facilities <archivo.csv>",
		Short:        "Carga códigos DATIM de centros de salud en el backend",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()
			rows, err := readRows(f, latin1)
			if err != nil {
				return err
			}

			store, err := impilo.NewFileTokenStore(cfg.API.TokenFile)
			if err != nil {
				return err
			}
			client := impilo.NewClient(impilo.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout, Token: cfg.API.Token},
				impilo.WithLogger(log.Zerolog()))
			services := impilo.NewServices(client, store)
			if err := services.Auth.InitAuth(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(len(rows)+1)*cfg.API.Timeout)
			defer cancel()
			n, err := seed(ctx, services.Locations.Facilities, rows, dryRun, log)
			fmt.Printf("Actualizados %d de %d centros\n", n, len(rows))
			return err
		},
	}
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el CSV está en ISO-8859-1")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "no escribe en el backend")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed_facilities: %v\n", err)
		os.Exit(1)
	}
}
