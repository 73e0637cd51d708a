package main

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dwikikusuma/storefront/internal/admin/infra/imagefile"
)

// offlineNote warns that the store commands bypass a running server. Against
// a live server use GET /api/admin/export and POST /api/admin/import.
const offlineNote = `

Run this only while "storefront serve" is stopped. A running server holds the
bolt file lock, so the command times out, and with sqlite the server's next
save overwrites the change. Use GET /api/admin/export and
POST /api/admin/import against a running server instead.`

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the merged catalog as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), catalogLoadTimeout)
		defer cancel()
		if err := st.catalog.Load(ctx); err != nil {
			return err
		}

		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(st.catalog.Catalog(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the overrides blob",
	Long:  "Print the overrides blob from the configured store." + offlineNote,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		text, err := st.editor.Export()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Replace the overrides blob with a JSON document",
	Long: "Replace the overrides blob with a JSON document read from a file, or from stdin when the argument is '-' or absent. Unparsable input is ignored." +
		offlineNote,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		text, err := io.ReadAll(r)
		if err != nil {
			return err
		}

		st, err := newStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		ok, err := st.editor.Import(cmd.Context(), string(text))
		if err != nil {
			return err
		}
		if !ok {
			log.Warn("import ignored: input is blank or not valid JSON")
			return nil
		}
		o := st.editor.Overrides()
		log.Info("overrides imported",
			zap.Int("categories", len(o.Categories)),
			zap.Int("products", len(o.Products)),
		)
		return nil
	},
}

var imageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Print an image file as a data URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := <-imagefile.Capture(args[0])
		if res.Err != nil {
			return res.Err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), res.DataURL)
		return err
	},
}
