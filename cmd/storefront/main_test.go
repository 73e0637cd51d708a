package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCLIImportExportCatalog(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`
categories:
  - id: finance
    name: Finance
products:
  - id: p1
    title: Bond
    categoryId: finance
    price: 20
    image: b.png
`), 0o600))

	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("STORE_PATH", filepath.Join(dir, "store.db"))
	t.Setenv("CATALOG_SOURCE", catalogPath)
	t.Setenv("LOG_LEVEL", "error")

	out := runCLI(t, "", "catalog")
	assert.Contains(t, out, `"Bond"`)

	runCLI(t, `{"deletedProductIds":["p1"]}`, "import", "-")

	out = runCLI(t, "", "export")
	assert.Contains(t, out, `"p1"`)

	out = runCLI(t, "", "catalog")
	assert.NotContains(t, out, `"Bond"`)
}

func TestCLIImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))
	t.Setenv("STORE_DRIVER", "memory")

	out := runCLI(t, "", "image", path)
	assert.True(t, strings.HasPrefix(out, "data:text/plain;base64,"), out)
}

func TestStoreCommandsDocumentOfflineUse(t *testing.T) {
	for _, cmd := range []*cobra.Command{exportCmd, importCmd} {
		assert.Contains(t, cmd.Long, `"storefront serve" is stopped`, cmd.Name())
		assert.Contains(t, cmd.Long, "/api/admin/", cmd.Name())
	}
}
