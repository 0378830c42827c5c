package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neuraops/dashboard/internal/dashboard"
	commoncmd "github.com/neuraops/dashboard/internal/pkg/cmd"
	pkgcmd "github.com/neuraops/dashboard/pkg/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "neuraops-dashboard",
		Short:         "NeuraOps dashboard server and command line session client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		statusCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			infra := commoncmd.NewInfrastructureContainer(nil)
			defer infra.Close(ctx)

			logger := infra.Logger.MustLoad()
			logger.Info(ctx, "app is starting")

			container := dashboard.NewDependencyContainer(
				infra.Config,
				infra.HTTPClientFactory,
				infra.Metrics,
				infra.Logger,
			)
			if err := container.WaitControlPlane(ctx); err != nil {
				logger.WithError(err).Warn(ctx, "control plane is not reachable, serving anyway")
			}

			httpServer := infra.HTTPServer.MustLoad()
			container.MustRegisterHTTPHandlers(httpServer)

			logger.Info(ctx, "app is ready")
			return pkgcmd.Run(ctx, logger,
				pkgcmd.TermSignalAwaiter,
				httpServer.Listener,
				container.PurgeJob(),
			)
		},
	}
}

// cliContainer logs to stderr, stdout belongs to command output.
func cliContainer() (*commoncmd.InfrastructureContainer, *dashboard.DependencyContainer) {
	infra := commoncmd.NewInfrastructureContainer(os.Stderr)
	return infra, dashboard.NewDependencyContainer(
		infra.Config,
		infra.HTTPClientFactory,
		infra.Metrics,
		infra.Logger,
	)
}
