// Command cmsctl runs maintenance tasks against the configured bucket using
// the same environment as the API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bucketcms/service/internal/app"
	"github.com/bucketcms/service/internal/config"
	"github.com/bucketcms/service/internal/logging"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	c := &cobra.Command{
		Use:           "cmsctl",
		Short:         "BucketCMS maintenance commands",
		Version:       fmt.Sprintf("%s - build %.7s", version, revision),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(provisionCmd)
	c.AddCommand(reconcileCmd)
	c.AddCommand(countCmd)
	c.AddCommand(collectionsCmd)

	if err := c.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	provisionCmd = &cobra.Command{
		Use:   "provision",
		Short: "Create the bucket and grant anonymous read on its objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if err := a.Provisioner.Provision(ctx); err != nil {
					return err
				}
				fmt.Printf("bucket %s provisioned\n", a.Store.Bucket())
				return nil
			})
		},
	}

	reconcileCmd = &cobra.Command{
		Use:   "reconcile",
		Short: "Finish or roll back renames interrupted between write and delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				report, err := a.Reconciler.Run(ctx)
				if err != nil {
					return err
				}
				if err := printJSON(report); err != nil {
					return err
				}
				if report.Failed > 0 {
					return fmt.Errorf("%d rename(s) could not be reconciled", report.Failed)
				}
				return nil
			})
		},
	}

	countCmd = &cobra.Command{
		Use:   "count COLLECTION",
		Short: "Count the items of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				n, err := a.Enumerator.CountItems(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Println(n)
				return nil
			})
		},
	}

	collectionsCmd = &cobra.Command{
		Use:   "collections",
		Short: "List collections with their item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				counts, err := a.Enumerator.CollectionCounts(ctx)
				if err != nil {
					return err
				}
				return printJSON(counts)
			})
		},
	}
)

func withApp(parent context.Context, fn func(context.Context, *app.App) error) error {
	cfg := config.Load()
	if problems := cfg.Problems(); len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
