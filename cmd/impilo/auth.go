package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

func newLoginCmd(a *cli) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				// Sin --password se lee una línea de stdin (permite: echo $PASS | impilo login -u x).
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("leer password de stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			session, err := a.auth.Login(cmd.Context(), dto.LoginRequest{Username: username, Password: password})
			if err != nil {
				return err
			}
			if err := a.auth.Persist(session.Token); err != nil {
				return fmt.Errorf("guardar token: %w", err)
			}
			if a.json {
				return a.print(session, nil)
			}
			return a.done(fmt.Sprintf("sesión iniciada como %s (token en %s)", session.Username, a.store.Path()))
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "usuario")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (si se omite se lee de stdin)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión y borra el token guardado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			return a.done("sesión cerrada")
		},
	}
}

func newWhoamiCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra la sesión guardada (usuario, roles y vencimiento)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.auth.Session(a.services.Client.Token())
			if err != nil {
				return err
			}
			session.Token = ""
			return a.print(session, func() *table {
				t := newTable("Sesión", "usuario", "roles", "vence")
				exp := "-"
				if session.ExpiresAt != nil {
					exp = session.ExpiresAt.Local().Format(time.DateTime)
				}
				t.add(session.Username, orDash(strings.Join(session.Roles, ", ")), exp)
				return t
			})
		},
	}
}

func newValidateCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Valida el token guardado contra el backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.auth.Validate(cmd.Context(), a.services.Client.Token())
			if err != nil {
				return err
			}
			if a.json {
				return a.print(res, nil)
			}
			return a.done("token válido para " + orDash(res.Username))
		},
	}
}

func newRegisterCmd(a *cli) *cobra.Command {
	var in entity.UserRegistrationDto
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registra un usuario nuevo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.auth.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(user, func() *table { return usersTable("Usuario registrado", *user) })
		},
	}
	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "usuario")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "password")
	cmd.Flags().StringVar(&in.Email, "email", "", "correo")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "nombre")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "apellido")
	return cmd
}

func newResetPasswordCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Solicita el correo de recuperación de password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.auth.ResetPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.done(orDash(msg))
		},
	}
}
