package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("storectl %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "loja.db"))
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("LOG_LEVEL", "error")

	execute(t, "migrate")

	out := execute(t, "create-user", "--nome", "Dona Maria", "--email", "Maria@Loja.com", "--senha", "segredo123")
	if !strings.Contains(out, "<maria@loja.com> as admin") {
		t.Errorf("unexpected create-user output %q", out)
	}

	file := filepath.Join(dir, "catalogo.yaml")
	doc := `categorias:
  - nome: Doces
    produtos:
      - nome: Brigadeiro
        preco: "3.50"
        estoque: 0
      - nome: Beijinho
        preco: "3.00"
        estoque: 40
`
	if err := os.WriteFile(file, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	out = execute(t, "seed", file)
	if !strings.Contains(out, "categories: 1, products: 2, banners: 0, skipped: 0") {
		t.Errorf("unexpected seed output %q", out)
	}

	out = execute(t, "stock", "--baixo", "3")
	if !strings.Contains(out, "Brigadeiro") || !strings.Contains(out, "ESGOTADO") {
		t.Errorf("stock report missing rows:\n%s", out)
	}
}

func TestSeedRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"seed"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an argument error")
	}
}
