package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fnol_intake/internal/domain/branding"
	"fnol_intake/internal/domain/certificate"

	"github.com/spf13/cobra"
)

func certificateCmd() *cobra.Command {
	var (
		insurer string
		name    string
		email   string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "certificate",
		Short: "Render a certificate of insurance to a file",
		Long: `Render a certificate for the given holder, branded for --insurer, and write
it as Certificate_<Insurer>.html into --out. Unknown insurers get the generic
colors with their own name on the document.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := writeCertificate(outDir, insurer, certificate.Holder{Name: name, Email: email})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&insurer, "insurer", "", "insurance company (MAPFRE, ALLIANZ, AXA, OCCIDENT or any name)")
	cmd.Flags().StringVar(&name, "name", "", "certificate holder name")
	cmd.Flags().StringVar(&email, "email", "", "certificate holder email")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func writeCertificate(dir, insurer string, holder certificate.Holder) (string, error) {
	theme := branding.Resolve(insurer)
	doc, err := certificate.Render(holder, theme)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "Certificate_"+filepath.Base(theme.Name)+".html")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write certificate: %w", err)
	}
	return path, nil
}
