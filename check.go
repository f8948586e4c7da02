package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sfd-intake/pkg/clients/sheets"
	"sfd-intake/pkg/models"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the service account can reach every form's spreadsheet",
	Long: `check authenticates with the configured service account and looks up the
spreadsheet and sheet tab each form appends to. Nothing is written.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	client := sheets.NewClient(sheets.Options{
		Endpoint: cfg.Google.Endpoint,
		TokenURL: cfg.Google.TokenURL,
		Timeout:  cfg.Timeout(),
	})

	var handle sheets.Handle
	failed := 0
	for _, v := range models.Variants {
		layout := models.LayoutFor(v)
		target := cfg.Target(v)
		fmt.Fprintf(out, "%s: layout v%d %s [%s]\n", v, layout.Version,
			layout.AppendRange(target.SheetName), strings.Join(layout.Columns, ", "))

		if missing := cfg.MissingStoreSettings(v); len(missing) > 0 {
			fmt.Fprintf(out, "  FAIL missing settings: %s\n", strings.Join(missing, ", "))
			failed++
			continue
		}

		if handle == nil {
			h, err := client.Connect(cmd.Context(), sheets.Credentials{
				ClientEmail: cfg.Google.ClientEmail,
				PrivateKey:  cfg.Google.PrivateKey,
			})
			if err != nil {
				logger.Error("Error authenticating with Google", zap.Error(err))
				return fmt.Errorf("authentication failed: %w", err)
			}
			handle = h
		}

		md, err := handle.Describe(cmd.Context(), target.SpreadsheetID)
		switch {
		case err != nil:
			fmt.Fprintf(out, "  FAIL %v\n", err)
			failed++
		case !md.HasSheet(target.SheetName):
			fmt.Fprintf(out, "  FAIL spreadsheet %q has no sheet %q (found %s)\n",
				md.Title, target.SheetName, strings.Join(md.SheetTitles, ", "))
			failed++
		default:
			fmt.Fprintf(out, "  ok   spreadsheet %q sheet %q\n", md.Title, target.SheetName)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d forms cannot reach their spreadsheet", failed, len(models.Variants))
	}
	return nil
}
