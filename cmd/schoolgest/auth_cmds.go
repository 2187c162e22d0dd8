package main

import (
	"fmt"
	"os"
	"time"

	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const passwordEnvVar = "SCHOOLGEST_PASSWORD"

func passwordFlag(cmd *cobra.Command, target *string, name, usage string) {
	cmd.Flags().StringVar(target, name, "", usage+" (defaults to $"+passwordEnvVar+")")
}

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = term.IsTerminal
)

// password returns the flag value, then the environment, then prompts on a
// terminal without echo.
func password(cmd *cobra.Command, p, prompt string) string {
	if p != "" {
		return p
	}
	if p = os.Getenv(passwordEnvVar); p != "" {
		return p
	}
	fd := int(os.Stdin.Fd())
	if !isTerminalFunc(fd) {
		return ""
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pwd, err := readPasswordFunc(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return ""
	}
	return string(pwd)
}

func (c *cli) loginCmd() *cobra.Command {
	var req users.LoginRequest
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = args[0]
			req.Password = password(cmd, req.Password, "Mot de passe: ")
			user, err := c.app.Auth.Login(cmd.Context(), req)
			if err != nil {
				return c.fail(cmd.Context(), err, "login")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connecté en tant que %s (%s), tableau de bord %s\n",
				user.FullName(), user.Role, users.DashboardRoute(user.Role))
			return nil
		},
	}
	passwordFlag(cmd, &req.Password, "password", "account password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Auth.Logout()
			return nil
		},
	}
}

type tokenInfo struct {
	Subject   string     `json:"subject"`
	Role      string     `json:"role,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type whoami struct {
	User  *users.User `json:"user"`
	Token *tokenInfo  `json:"token,omitempty"`
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user as the backend sees it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.app.Auth.IsAuthenticated() {
				return c.fail(cmd.Context(), apperrors.ErrNotAuthenticated, "whoami")
			}
			user, err := c.app.Auth.GetMe(cmd.Context())
			if err != nil {
				return c.fail(cmd.Context(), err, "whoami")
			}
			out := whoami{User: user}
			if claims, err := c.app.Auth.AccessClaims(cmd.Context()); err == nil {
				out.Token = &tokenInfo{
					Subject:   claims.Subject,
					Role:      claims.Role,
					Roles:     claims.Roles,
					ExpiresAt: claims.ExpiresAt,
				}
				if !claims.IssuedAt.IsZero() {
					out.Token.IssuedAt = &claims.IssuedAt
				}
			} else {
				c.logger.Debug().Err(err).Msg("access token claims unavailable")
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) registerCmd() *cobra.Command {
	var req users.RegisterRequest
	var role string
	cmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username, req.Email = args[0], args[1]
			req.Password = password(cmd, req.Password, "Mot de passe: ")
			req.Role = users.NormalizeRole(users.Role(role))
			resp, err := c.app.Auth.Register(cmd.Context(), req)
			if err != nil {
				return c.fail(cmd.Context(), err, "register")
			}
			if resp.User != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Compte %s créé (score du mot de passe: %d/100)\n",
					resp.User.Username, users.PasswordStrength(req.Password))
			}
			return nil
		},
	}
	passwordFlag(cmd, &req.Password, "password", "account password")
	cmd.Flags().StringVar(&role, "role", string(users.RoleStudent), "ADMIN, ENSEIGNANT or ETUDIANT")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "given name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "family name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	return cmd
}

func (c *cli) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Reset or change a password",
	}

	forgot := &cobra.Command{
		Use:   "forgot <email>",
		Short: "Email a reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Auth.RequestPasswordReset(cmd.Context(), args[0]); err != nil {
				return c.fail(cmd.Context(), err, "password forgot")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Un lien de réinitialisation a été envoyé.")
			return nil
		},
	}

	var reset users.ResetPasswordRequest
	resetCmd := &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password with a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reset.Token = args[0]
			reset.NewPassword = password(cmd, reset.NewPassword, "Nouveau mot de passe: ")
			if reset.ConfirmPassword == "" {
				reset.ConfirmPassword = reset.NewPassword
			}
			if err := c.app.Auth.ResetPassword(cmd.Context(), reset); err != nil {
				return c.fail(cmd.Context(), err, "password reset")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mot de passe réinitialisé.")
			return nil
		},
	}
	passwordFlag(resetCmd, &reset.NewPassword, "new", "new password")
	resetCmd.Flags().StringVar(&reset.ConfirmPassword, "confirm", "", "confirmation, defaults to the new password")

	var change users.ChangePasswordRequest
	changeCmd := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			change.NewPassword = password(cmd, change.NewPassword, "Nouveau mot de passe: ")
			if change.ConfirmPassword == "" {
				change.ConfirmPassword = change.NewPassword
			}
			if err := c.app.Auth.ChangePassword(cmd.Context(), change); err != nil {
				return c.fail(cmd.Context(), err, "password change")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mot de passe modifié.")
			return nil
		},
	}
	changeCmd.Flags().StringVar(&change.CurrentPassword, "current", "", "current password")
	passwordFlag(changeCmd, &change.NewPassword, "new", "new password")
	changeCmd.Flags().StringVar(&change.ConfirmPassword, "confirm", "", "confirmation, defaults to the new password")

	cmd.AddCommand(forgot, resetCmd, changeCmd)
	return cmd
}
