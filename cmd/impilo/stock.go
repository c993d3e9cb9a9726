package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

func drugsTable(title string, ds ...entity.Drug) *table {
	t := newTable(title, "id", "medicamento", "genérico", "categoría", "precio", "unidad")
	for _, d := range ds {
		price := "-"
		if d.UnitPrice != nil {
			price = d.UnitPrice.StringFixed(2)
		}
		t.add(itoa(d.ID), d.Name, orDash(d.GenericName), orDash(string(d.Category)), price, orDash(string(d.MeasurementUnit)))
	}
	return t
}

func batchesTable(title string, bs ...entity.StockBatch) *table {
	t := newTable(title, "id", "lote", "medicamento", "centro", "vence", "actual", "inicial", "estado")
	for _, b := range bs {
		drug, facility, expiry := "-", "-", "-"
		if b.Drug != nil {
			drug = b.Drug.Name
		}
		if b.Facility != nil {
			facility = b.Facility.Name
		}
		if b.ExpiryDate != nil {
			expiry = b.ExpiryDate.String()
		}
		t.add(itoa(b.ID), b.BatchNumber, drug, facility, expiry,
			strconv.Itoa(b.CurrentQuantity), strconv.Itoa(b.InitialQuantity), orDash(string(b.Status)))
	}
	return t
}

func transactionsTable(title string, ts ...entity.StockTransaction) *table {
	t := newTable(title, "id", "fecha", "tipo", "medicamento", "cantidad", "origen", "destino")
	for _, tx := range ts {
		date, drug, src, dst := "-", "-", "-", "-"
		if tx.TransactionDate != nil {
			date = tx.TransactionDate.Local().Format(time.DateTime)
		}
		if tx.Drug != nil {
			drug = tx.Drug.Name
		}
		if tx.SourceFacility != nil {
			src = tx.SourceFacility.Name
		}
		if tx.DestinationFacility != nil {
			dst = tx.DestinationFacility.Name
		}
		t.add(itoa(tx.ID), date, string(tx.TransactionType), drug, strconv.Itoa(tx.Quantity), src, dst)
	}
	return t
}

func facilityStockTable(title string, ss ...entity.FacilityStock) *table {
	t := newTable(title, "id", "centro", "medicamento", "nivel", "mínimo", "reorden", "estado")
	optional := func(p *int) string {
		if p == nil {
			return "-"
		}
		return strconv.Itoa(*p)
	}
	for _, s := range ss {
		facility, drug := "-", "-"
		if s.Facility != nil {
			facility = s.Facility.Name
		}
		if s.Drug != nil {
			drug = s.Drug.Name
		}
		t.add(itoa(s.ID), facility, drug, strconv.Itoa(s.StockLevel), optional(s.MinLevel), optional(s.ReOrderLevel), string(s.Status()))
	}
	return t
}

func newStockCmd(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Medicamentos, lotes, movimientos y reportes de stock",
	}
	cmd.AddCommand(
		newDrugsCmd(a),
		newLowStockCmd(a),
		newCriticalCmd(a),
		newBatchesCmd(a),
		newAddBatchCmd(a),
		newAdjustCmd(a),
		newTransferCmd(a),
		newDispenseCmd(a),
		newHistoryCmd(a),
		newRequestCmd(a),
		newLevelsCmd(a),
		newReportCmd(a),
	)
	return cmd
}

// ── Medicamentos ─────────────────────────────────────────────────────────────

func newDrugsCmd(a *cli) *cobra.Command {
	var p entity.Pageable
	cmd := &cobra.Command{
		Use:   "drugs",
		Short: "Lista el catálogo de medicamentos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.services.Stock.Drugs.GetAll(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.print(page, func() *table { return drugsTable(pageTitle("Medicamentos", page), page.Content...) })
		},
	}
	cmd.Flags().IntVar(&p.Page, "page", 0, "página (base 0)")
	cmd.Flags().IntVar(&p.Size, "size", dashboard.DrugPageSizes[0], "tamaño de página")
	cmd.Flags().StringSliceVar(&p.Sort, "sort", []string{"name,asc"}, "orden campo,dirección (repetible)")

	var (
		in    entity.Drug
		price string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Agrega un medicamento al catálogo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Category = entity.DrugCategory(strings.ToUpper(string(in.Category)))
			if in.Category != "" && !in.Category.Valid() {
				return fmt.Errorf("categoría inválida %q", in.Category)
			}
			in.MeasurementUnit = entity.MeasurementUnit(strings.ToUpper(string(in.MeasurementUnit)))
			if price != "" {
				d, err := decimal.NewFromString(price)
				if err != nil || d.IsNegative() {
					return fmt.Errorf("precio inválido %q", price)
				}
				in.UnitPrice = &d
			}
			res, err := a.services.Stock.Drugs.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res, func() *table { return drugsTable("Medicamento agregado", *res) })
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "nombre comercial")
	add.Flags().StringVar(&in.GenericName, "generic", "", "nombre genérico")
	add.Flags().StringVar(&in.Manufacturer, "manufacturer", "", "fabricante")
	add.Flags().StringVar((*string)(&in.Category), "category", "", "ANTIBIOTIC, PAINKILLER, CARDIOVASCULAR, RESPIRATORY o MENTAL_HEALTH")
	add.Flags().StringVar((*string)(&in.MeasurementUnit), "unit", string(entity.UnitTablet), "TABLET, CAPSULE, MILLILITER o GRAM")
	add.Flags().StringVar(&price, "price", "", "precio unitario")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add)
	return cmd
}

func newLowStockCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "Medicamentos con stock bajo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.services.Stock.Drugs.LowStock(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(ds, func() *table { return drugsTable("Stock bajo", ds...) })
		},
	}
}

func newCriticalCmd(a *cli) *cobra.Command {
	var threshold int
	cmd := &cobra.Command{
		Use:   "critical",
		Short: "Medicamentos bajo el umbral crítico",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.services.Stock.Drugs.Critical(cmd.Context(), threshold)
			if err != nil {
				return err
			}
			return a.print(ds, func() *table { return drugsTable(fmt.Sprintf("Stock crítico (< %d)", threshold), ds...) })
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", dashboard.DefaultCriticalThreshold, "umbral")
	return cmd
}

// ── Lotes ────────────────────────────────────────────────────────────────────

func newBatchesCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "batches <facility-id>",
		Short: "Lotes de un centro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facility, err := parseID(args[0])
			if err != nil {
				return err
			}
			bs, err := a.services.Stock.Batches.GetByFacility(cmd.Context(), facility)
			if err != nil {
				return err
			}
			return a.print(bs, func() *table { return batchesTable("Lotes", bs...) })
		},
	}
}

func newAddBatchCmd(a *cli) *cobra.Command {
	var (
		drug, facility int64
		in             entity.StockBatch
		expiry         string
	)
	cmd := &cobra.Command{
		Use:   "add-batch",
		Short: "Registra un lote recibido",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.InitialQuantity <= 0 {
				return fmt.Errorf("la cantidad debe ser positiva")
			}
			if expiry != "" {
				d, err := entity.ParseDate(expiry)
				if err != nil {
					return err
				}
				in.ExpiryDate = &d
			}
			in.CurrentQuantity = in.InitialQuantity
			res, err := a.services.Stock.Batches.Add(cmd.Context(), drug, facility, in)
			if err != nil {
				return err
			}
			return a.print(res, func() *table { return batchesTable("Lote registrado", *res) })
		},
	}
	cmd.Flags().Int64Var(&drug, "drug", 0, "id del medicamento")
	cmd.Flags().Int64Var(&facility, "facility", 0, "id del centro")
	cmd.Flags().StringVar(&in.BatchNumber, "number", "", "número de lote")
	cmd.Flags().IntVar(&in.InitialQuantity, "quantity", 0, "cantidad recibida")
	cmd.Flags().StringVar(&expiry, "expiry", "", "vencimiento YYYY-MM-DD")
	for _, f := range []string{"drug", "facility", "number", "quantity"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newAdjustCmd(a *cli) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "adjust <batch-id> <cantidad>",
		Short: "Ajusta la cantidad de un lote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil || qty < 0 {
				return fmt.Errorf("cantidad inválida %q", args[1])
			}
			res, err := a.services.Stock.Batches.AdjustQuantity(cmd.Context(), batch, qty, reason)
			if err != nil {
				return err
			}
			return a.print(res, func() *table { return batchesTable("Lote ajustado", *res) })
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "motivo del ajuste")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

// ── Movimientos ──────────────────────────────────────────────────────────────

func newTransferCmd(a *cli) *cobra.Command {
	var (
		drug, from, to int64
		qty            int
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Traslada stock entre centros",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if qty <= 0 {
				return fmt.Errorf("la cantidad debe ser positiva")
			}
			if from == to {
				return fmt.Errorf("origen y destino deben ser distintos")
			}
			tx, err := a.services.Stock.Transactions.Transfer(cmd.Context(), drug, qty, from, to)
			if err != nil {
				return err
			}
			return a.print(tx, func() *table { return transactionsTable("Traslado registrado", *tx) })
		},
	}
	cmd.Flags().Int64Var(&drug, "drug", 0, "id del medicamento")
	cmd.Flags().Int64Var(&from, "from", 0, "centro de origen")
	cmd.Flags().Int64Var(&to, "to", 0, "centro de destino")
	cmd.Flags().IntVar(&qty, "quantity", 0, "cantidad")
	for _, f := range []string{"drug", "from", "to", "quantity"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newDispenseCmd(a *cli) *cobra.Command {
	var (
		drug, facility int64
		qty            int
	)
	cmd := &cobra.Command{
		Use:   "dispense",
		Short: "Registra una dispensación",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if qty <= 0 {
				return fmt.Errorf("la cantidad debe ser positiva")
			}
			tx, err := a.services.Stock.Transactions.Dispense(cmd.Context(), drug, qty, facility)
			if err != nil {
				return err
			}
			return a.print(tx, func() *table { return transactionsTable("Dispensación registrada", *tx) })
		},
	}
	cmd.Flags().Int64Var(&drug, "drug", 0, "id del medicamento")
	cmd.Flags().Int64Var(&facility, "facility", 0, "id del centro")
	cmd.Flags().IntVar(&qty, "quantity", 0, "cantidad")
	for _, f := range []string{"drug", "facility", "quantity"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newHistoryCmd(a *cli) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history <drug-id>",
		Short: "Movimientos de un medicamento en los últimos días",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drug, err := parseID(args[0])
			if err != nil {
				return err
			}
			if days <= 0 {
				return fmt.Errorf("--days debe ser positivo")
			}
			end := time.Now().UTC()
			start := end.AddDate(0, 0, -days)
			ts, err := a.services.Stock.Transactions.History(cmd.Context(), drug, start, end)
			if err != nil {
				return err
			}
			return a.print(ts, func() *table {
				return transactionsTable(fmt.Sprintf("Movimientos (%s a %s)", start.Format(time.DateOnly), end.Format(time.DateOnly)), ts...)
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "ventana en días")
	return cmd
}

func newRequestCmd(a *cli) *cobra.Command {
	var in entity.StockRequest
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Solicita reposición para un centro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Quantity <= 0 {
				return fmt.Errorf("la cantidad debe ser positiva")
			}
			res, err := a.services.Stock.Requests.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.json {
				return a.print(res, nil)
			}
			return a.done(fmt.Sprintf("solicitud de %d unidades enviada", in.Quantity))
		},
	}
	cmd.Flags().Int64Var(&in.DrugID, "drug", 0, "id del medicamento")
	cmd.Flags().Int64Var(&in.RequestingFacilityID, "facility", 0, "centro solicitante")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 0, "cantidad")
	for _, f := range []string{"drug", "facility", "quantity"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

// ── Reportes ─────────────────────────────────────────────────────────────────

func newLevelsCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Cantidades por centro y medicamento",
		RunE: func(cmd *cobra.Command, _ []string) error {
			levels, err := a.services.Stock.Reports.StockLevelsByFacility(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(levels, func() *table {
				t := newTable("Niveles de stock", "centro", "medicamento", "cantidad")
				for _, facility := range sortedKeys(levels) {
					drugs := levels[facility]
					for _, drug := range sortedKeys(drugs) {
						t.add(facility, drug, strconv.Itoa(drugs[drug]))
					}
				}
				return t
			})
		},
	}
}

func newReportCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Reporte general de stock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.services.Stock.Reports.StockReport(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(report, func() *table {
				t := newTable("Reporte de stock", "clave", "valor")
				for _, k := range sortedKeys(report) {
					t.add(k, fmt.Sprint(report[k]))
				}
				return t
			})
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ── Stock por centro ─────────────────────────────────────────────────────────

func newFacilityStockCmd(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facility-stock",
		Short: "Niveles de stock por centro con umbrales",
	}

	var (
		facility, drug           int64
		level, minLevel, reorder int
	)
	save := &cobra.Command{
		Use:   "save",
		Short: "Crea o actualiza el nivel de un medicamento en un centro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if level < 0 || minLevel < 0 || reorder < 0 {
				return fmt.Errorf("los niveles no pueden ser negativos")
			}
			in := entity.FacilityStock{
				Facility:     &entity.Facility{ID: facility},
				Drug:         &entity.Drug{ID: drug},
				StockLevel:   level,
				MinLevel:     &minLevel,
				ReOrderLevel: &reorder,
			}
			res, err := a.services.Stock.FacilityStock.Save(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res, func() *table { return facilityStockTable("Stock guardado", *res) })
		},
	}
	save.Flags().Int64Var(&facility, "facility", 0, "id del centro")
	save.Flags().Int64Var(&drug, "drug", 0, "id del medicamento")
	save.Flags().IntVar(&level, "level", 0, "nivel actual")
	save.Flags().IntVar(&minLevel, "min", 0, "nivel mínimo")
	save.Flags().IntVar(&reorder, "reorder", 0, "nivel de reorden")
	for _, f := range []string{"facility", "drug", "level"} {
		_ = save.MarkFlagRequired(f)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Lista niveles de stock",
			RunE: func(cmd *cobra.Command, _ []string) error {
				ss, err := a.services.Stock.FacilityStock.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(ss, func() *table { return facilityStockTable("Stock por centro", ss...) })
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Detalle de un registro",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseID(args[0])
				if err != nil {
					return err
				}
				s, err := a.services.Stock.FacilityStock.GetByID(cmd.Context(), n)
				if err != nil {
					return err
				}
				return a.print(s, func() *table { return facilityStockTable("Stock por centro", *s) })
			},
		},
		save,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Elimina un registro",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.services.Stock.FacilityStock.Delete(cmd.Context(), n); err != nil {
					return err
				}
				return a.done("registro " + args[0] + " eliminado")
			},
		},
	)
	return cmd
}
