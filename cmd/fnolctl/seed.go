package main

import (
	"fmt"
	"io"

	"fnol_intake/internal/bootstrap"
	"fnol_intake/internal/config"
	"fnol_intake/pkg/logger"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the demo admin and client accounts",
		Long: `Create admin@fnolpro.com (ADMIN) and client@example.com (CLIENT) in the
configured store, plus one sample AUTO claim for the client. Existing
accounts are left untouched, so the command can be re-run safely.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil && store == "" {
				return err
			}
			if store != "" {
				cfg.StoreDriver = store
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			app, err := bootstrap.New(cmd.Context(), cfg, logger.Default())
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Seed(cmd.Context())
			if err != nil {
				return err
			}
			printSeedReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "override STORE_DRIVER (dynamodb, postgres, memory)")
	return cmd
}

func printSeedReport(w io.Writer, r bootstrap.SeedReport) {
	fmt.Fprintf(w, "admin   %-22s %s\n", r.Admin.Email, createdOrExisting(r.AdminCreated))
	fmt.Fprintf(w, "client  %-22s %s\n", r.Client.Email, createdOrExisting(r.ClientCreated))
	if r.SampleClaim.ID != "" {
		fmt.Fprintf(w, "claim   %-22s created\n", r.SampleClaim.ClaimNumber)
	}
}

func createdOrExisting(created bool) string {
	if created {
		return "created"
	}
	return "exists"
}
