package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

func parseID(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return n, nil
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func provincesTable(title string, ps ...entity.Province) *table {
	t := newTable(title, "id", "provincia")
	for _, p := range ps {
		t.add(itoa(p.ID), p.Name)
	}
	return t
}

func districtsTable(title string, ds ...entity.District) *table {
	t := newTable(title, "id", "distrito", "provincia")
	for _, d := range ds {
		prov := "-"
		if d.Province != nil {
			prov = d.Province.Name
		}
		t.add(itoa(d.ID), d.Name, prov)
	}
	return t
}

func facilitiesTable(title string, fs ...entity.Facility) *table {
	t := newTable(title, "id", "centro", "provincia", "distrito", "datim")
	for _, f := range fs {
		t.add(itoa(f.ID), f.Name, orDash(f.ProvinceName), orDash(f.DistrictName), orDash(f.DatimOrgID))
	}
	return t
}

func pageTitle[T any](name string, p *entity.Page[T]) string {
	return fmt.Sprintf("%s (página %d de %d, %d en total)", name, p.Number+1, p.TotalPages, p.TotalElements)
}

func newLocationsCmd(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"loc"},
		Short:   "Provincias, distritos y centros de salud",
	}
	cmd.AddCommand(newProvincesCmd(a), newDistrictsCmd(a), newFacilitiesCmd(a))
	return cmd
}

// ── Provincias ───────────────────────────────────────────────────────────────

func newProvincesCmd(a *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "provinces", Short: "Provincias"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Lista provincias",
			RunE: func(cmd *cobra.Command, _ []string) error {
				ps, err := a.services.Locations.Provinces.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(ps, func() *table { return provincesTable("Provincias", ps...) })
			},
		},
		&cobra.Command{
			Use:   "get <id|nombre>",
			Short: "Busca una provincia por id o nombre",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc := a.services.Locations.Provinces
				var (
					p   *entity.Province
					err error
				)
				if n, perr := parseID(args[0]); perr == nil {
					p, err = svc.GetByID(cmd.Context(), n)
				} else {
					p, err = svc.GetByName(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				return a.print(p, func() *table { return provincesTable("Provincia", *p) })
			},
		},
		&cobra.Command{
			Use:   "create <nombre>",
			Short: "Crea una provincia",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.services.Locations.Provinces.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(p, func() *table { return provincesTable("Provincia creada", *p) })
			},
		},
		&cobra.Command{
			Use:   "rename <id> <nombre>",
			Short: "Renombra una provincia",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseID(args[0])
				if err != nil {
					return err
				}
				p, err := a.services.Locations.Provinces.Update(cmd.Context(), n, args[1])
				if err != nil {
					return err
				}
				return a.print(p, func() *table { return provincesTable("Provincia actualizada", *p) })
			},
		},
	)
	return cmd
}

// ── Distritos ────────────────────────────────────────────────────────────────

func newDistrictsCmd(a *cli) *cobra.Command {
	var province int64
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista distritos (opcionalmente de una provincia)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := a.services.Locations.Districts
			var (
				ds  []entity.District
				err error
			)
			if province > 0 {
				ds, err = svc.GetByProvince(cmd.Context(), province)
			} else {
				ds, err = svc.GetAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.print(ds, func() *table { return districtsTable("Distritos", ds...) })
		},
	}
	list.Flags().Int64Var(&province, "province", 0, "id de provincia")

	cmd := &cobra.Command{Use: "districts", Short: "Distritos"}
	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "get <id|nombre>",
			Short: "Busca un distrito por id o nombre",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc := a.services.Locations.Districts
				var (
					d   *entity.District
					err error
				)
				if n, perr := parseID(args[0]); perr == nil {
					d, err = svc.GetByID(cmd.Context(), n)
				} else {
					d, err = svc.GetByName(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				return a.print(d, func() *table { return districtsTable("Distrito", *d) })
			},
		},
		&cobra.Command{
			Use:   "create <nombre>",
			Short: "Crea un distrito",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := a.services.Locations.Districts.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(d, func() *table { return districtsTable("Distrito creado", *d) })
			},
		},
		&cobra.Command{
			Use:   "rename <id> <nombre>",
			Short: "Renombra un distrito",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseID(args[0])
				if err != nil {
					return err
				}
				d, err := a.services.Locations.Districts.Update(cmd.Context(), n, args[1])
				if err != nil {
					return err
				}
				return a.print(d, func() *table { return districtsTable("Distrito actualizado", *d) })
			},
		},
	)
	return cmd
}

// ── Centros de salud ─────────────────────────────────────────────────────────

func newFacilitiesCmd(a *cli) *cobra.Command {
	var (
		p        entity.Pageable
		all      bool
		district int64
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista centros de salud",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := a.services.Locations.Facilities
			if all || district > 0 {
				var (
					fs  []entity.Facility
					err error
				)
				if district > 0 {
					fs, err = svc.GetByDistrict(cmd.Context(), district)
				} else {
					fs, err = svc.GetAllNoPagination(cmd.Context())
				}
				if err != nil {
					return err
				}
				return a.print(fs, func() *table { return facilitiesTable("Centros de salud", fs...) })
			}
			page, err := svc.GetAll(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.print(page, func() *table { return facilitiesTable(pageTitle("Centros de salud", page), page.Content...) })
		},
	}
	list.Flags().IntVar(&p.Page, "page", 0, "página (base 0)")
	list.Flags().IntVar(&p.Size, "size", 20, "tamaño de página")
	list.Flags().StringSliceVar(&p.Sort, "sort", nil, "orden campo,dirección (repetible)")
	list.Flags().BoolVar(&all, "all", false, "sin paginación")
	list.Flags().Int64Var(&district, "district", 0, "id de distrito")

	var sp entity.Pageable
	search := &cobra.Command{
		Use:   "search <término>",
		Short: "Busca centros por nombre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.services.Locations.Facilities.Search(cmd.Context(), args[0], sp)
			if err != nil {
				return err
			}
			return a.print(page, func() *table { return facilitiesTable(pageTitle("Resultados", page), page.Content...) })
		},
	}
	search.Flags().IntVar(&sp.Page, "page", 0, "página (base 0)")
	search.Flags().IntVar(&sp.Size, "size", 20, "tamaño de página")

	cmd := &cobra.Command{Use: "facilities", Short: "Centros de salud"}
	cmd.AddCommand(
		list,
		search,
		&cobra.Command{
			Use:   "get <id>",
			Short: "Detalle de un centro",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseID(args[0])
				if err != nil {
					return err
				}
				f, err := a.services.Locations.Facilities.GetByID(cmd.Context(), n)
				if err != nil {
					return err
				}
				return a.print(f, func() *table { return facilitiesTable("Centro de salud", *f) })
			},
		},
	)
	return cmd
}
