package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

func usersTable(title string, users ...entity.User) *table {
	t := newTable(title, "id", "usuario", "nombre", "email", "roles")
	for _, u := range users {
		t.add(strconv.FormatInt(u.ID, 10), u.Username, u.FullName(), orDash(u.Email), orDash(strings.Join(u.Roles, ", ")))
	}
	return t
}

func newUsersCmd(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administración de usuarios",
	}

	var page, size int
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista usuarios paginados",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.services.Users.GetAll(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			return a.print(res, func() *table {
				return usersTable(fmt.Sprintf("Usuarios (página %d de %d, %d en total)", res.Number+1, res.TotalPages, res.TotalElements), res.Content...)
			})
		},
	}
	list.Flags().IntVar(&page, "page", 0, "página (base 0)")
	list.Flags().IntVar(&size, "size", 10, "tamaño de página")

	get := &cobra.Command{
		Use:   "get <username>",
		Short: "Detalle de un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.services.Users.GetByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(res, func() *table {
				t := newTable("Usuario", "usuario", "permisos", "habilitado")
				perms := make([]string, 0, len(res.Authorities))
				for _, p := range res.Authorities {
					perms = append(perms, p.Authority)
				}
				enabled := "-"
				if res.Enabled != nil {
					enabled = strconv.FormatBool(*res.Enabled)
				}
				t.add(res.Username, orDash(strings.Join(perms, ", ")), enabled)
				return t
			})
		},
	}

	var upd entity.User
	update := &cobra.Command{
		Use:   "update <username>",
		Short: "Actualiza nombre y correo de un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd.Username = args[0]
			res, err := a.services.Users.Update(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			return a.print(res, func() *table { return usersTable("Usuario actualizado", *res) })
		},
	}
	update.Flags().StringVar(&upd.FirstName, "first-name", "", "nombre")
	update.Flags().StringVar(&upd.LastName, "last-name", "", "apellido")
	update.Flags().StringVar(&upd.Email, "email", "", "correo")

	role := &cobra.Command{
		Use:   "update-role <username> <role>",
		Short: "Cambia el rol de un usuario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.services.Users.UpdateRole(cmd.Context(), args[0], strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			return a.print(res, func() *table { return usersTable("Rol actualizado", *res) })
		},
	}

	passwd := &cobra.Command{
		Use:   "change-password <username> <new-password>",
		Short: "Cambia el password de un usuario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.services.Users.ChangePassword(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "password actualizado"
			}
			return a.done(msg)
		},
	}

	cmd.AddCommand(list, get, update, role, passwd)
	return cmd
}
