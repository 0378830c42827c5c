package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	pkgworker "github.com/neuraops/dashboard/pkg/worker"
)

var errNotLoggedIn = errors.New("not logged in, run \"neuraops-dashboard login\"")

func loginCmd() *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the control plane and keep the token locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			infra, container := cliContainer()
			defer infra.Close(ctx)

			if err := promptMissing(cmd, &creds); err != nil {
				return err
			}

			user, err := container.CLISession.MustLoad().Login(ctx, creds)
			if errors.Is(err, pkghttp.ErrUnauthenticated) {
				return errors.New("invalid username or password")
			}
			if err != nil {
				return describe(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", describeUser(user))
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Account name")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password, read from stdin when omitted")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			infra, container := cliContainer()
			defer infra.Close(ctx)

			if err := container.CLISession.MustLoad().Logout(ctx); err != nil {
				return fmt.Errorf("clear local session: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			infra, container := cliContainer()
			defer infra.Close(ctx)

			user, err := container.CLISession.MustLoad().CurrentUser(ctx)
			if err != nil {
				return describe(err)
			}
			if user == nil {
				return errNotLoggedIn
			}

			fmt.Fprintln(cmd.OutOrStdout(), describeUser(*user))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the control plane and the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			infra, container := cliContainer()
			defer infra.Close(ctx)

			var (
				health    string
				healthErr error
				session   string
			)

			pool := pkgworker.NewPool(pkgworker.MaxWorkersCountUnlimited)
			pool.Do(func() {
				status, err := container.ControlPlane.MustLoad().Health(ctx)
				health, healthErr = status.Status, err
			})
			pool.Do(func() {
				session = sessionStatus(ctx, container.CLISession.MustLoad())
			})
			pool.Wait()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "API:     %s\n", infra.Config.MustLoad().APIURL)
			if healthErr != nil {
				fmt.Fprintf(out, "Health:  unreachable (%s)\n", describe(healthErr))
			} else {
				fmt.Fprintf(out, "Health:  %s\n", health)
			}
			fmt.Fprintf(out, "Session: %s\n", session)

			return healthErr
		},
	}
}

type currentUserReader interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*domain.User, error)
	CachedUser(ctx context.Context) (*domain.User, bool)
}

func sessionStatus(ctx context.Context, session currentUserReader) string {
	if !session.IsAuthenticated(ctx) {
		return "signed out"
	}

	user, err := session.CurrentUser(ctx)
	switch {
	case err != nil:
		if cached, ok := session.CachedUser(ctx); ok {
			return fmt.Sprintf("unknown (%s), last confirmed as %s", describe(err), describeUser(*cached))
		}
		return fmt.Sprintf("unknown (%s)", describe(err))
	case user == nil:
		return "expired"
	default:
		return "signed in as " + describeUser(*user)
	}
}

func promptMissing(cmd *cobra.Command, creds *domain.Credentials) error {
	in := bufio.NewReader(cmd.InOrStdin())

	var err error
	if creds.Username == "" {
		creds.Username, err = prompt(cmd.ErrOrStderr(), in, "Username: ")
		if err != nil {
			return err
		}
	}
	if creds.Password == "" {
		creds.Password, err = prompt(cmd.ErrOrStderr(), in, "Password: ")
		if err != nil {
			return err
		}
	}

	return nil
}

func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
	}

	return strings.TrimSpace(line), nil
}

func describeUser(user domain.User) string {
	if user.Role == "" {
		return user.Username
	}

	return fmt.Sprintf("%s (%s)", user.Username, user.Role)
}

func describe(err error) error {
	apiErr, ok := pkghttp.AsAPIError(err)
	if !ok {
		return err
	}

	if apiErr.Status == pkghttp.StatusNetworkError {
		return fmt.Errorf("control plane unreachable: %s", apiErr.Message)
	}
	return fmt.Errorf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
}
