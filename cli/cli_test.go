package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/color-game/palettetool/models"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtractCommand(t *testing.T) {
	path := writeFile(t, "theme.txt", "fg-2 #E0E0E0 fg-3 #E2E9E9\naccent #FF00FF extra\n")

	out, err := runCLI(t, "extract", "--tool", "test-tool", path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "\n    \"palettes\": [") {
		t.Fatalf("expected 4-space indented output, got:\n%s", out)
	}

	doc, err := models.ParseDocument([]byte(out))
	if err != nil {
		t.Fatalf("output is not a valid document: %v", err)
	}
	pal := doc.Palettes[0]
	if len(pal.Colors) != 2 || pal.Colors[0].Name != "fg-2" || pal.Colors[1].Name != "fg-3" {
		t.Fatalf("unexpected colors: %+v", pal.Colors)
	}
	if pal.Source.ConversionTool != "test-tool" || pal.Title != "untitled" {
		t.Fatalf("unexpected palette header: %+v", pal)
	}
}

func TestExtractCommandFailures(t *testing.T) {
	bad := writeFile(t, "bad.txt", "a #000000\nshort #ABCD\n")
	out, err := runCLI(t, "extract", "--tool", "t", bad)
	if err == nil || out != "" {
		t.Fatalf("expected fatal error and no output, got %q, %v", out, err)
	}

	binary := writeFile(t, "bin.txt", "a #000000 \xff\xfe")
	if _, err := runCLI(t, "extract", binary); !errors.Is(err, ErrNotText) {
		t.Fatalf("expected ErrNotText, got %v", err)
	}

	if _, err := runCLI(t, "extract", filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	if _, err := runCLI(t, "extract", "--algo", "kmeans", bad); err == nil {
		t.Fatalf("expected unknown algorithm error")
	}
}

const cliDoc = `{"palettes":[{"title":"night","source":{"conversion_tool":"t","conversion_date":"1"},
"colors":[{"name":"accent","red":1.0,"green":0.0,"blue":0.5,"alpha":1.0},
{"name":"背景","red":0.0,"green":0.0,"blue":0.0,"alpha":1.0}]}]}`

func TestRenderCommand(t *testing.T) {
	docPath := writeFile(t, "palette.json", cliDoc)
	tmplPath := writeFile(t, "theme.tmpl", `{{range (index .Doc.Palettes 0).Colors}}{{.Name}}: #{{hexcolor_rgb .}}
{{end}}`)

	out, err := runCLI(t, "render", docPath, tmplPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "accent: #ff007f\n背景: #000000\n" {
		t.Fatalf("unexpected output %q", out)
	}

	target := filepath.Join(t.TempDir(), "theme.conf")
	out, err = runCLI(t, "render", docPath, tmplPath, "-o", target)
	if err != nil {
		t.Fatalf("render -o: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout should be empty with -o, got %q", out)
	}
	written, err := os.ReadFile(target)
	if err != nil || !strings.HasPrefix(string(written), "accent: #ff007f") {
		t.Fatalf("output file = %q, %v", written, err)
	}
}

func TestRenderCommandValidates(t *testing.T) {
	docPath := writeFile(t, "palette.json", `{"palettes":[{"title":"x"}]}`)
	tmplPath := writeFile(t, "t.tmpl", "{{.Doc}}")

	_, err := runCLI(t, "render", docPath, tmplPath)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	docPath := writeFile(t, "palette.json", cliDoc)

	out, err := runCLI(t, "inspect", docPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, column line and 2 rows, got:\n%s", out)
	}
	if lines[2] != "accent  #ff007f  255   0 127 255" {
		t.Fatalf("row = %q", lines[2])
	}
	if lines[3] != "背景    #000000    0   0   0 255" {
		t.Fatalf("wide row = %q", lines[3])
	}

	if _, err := runCLI(t, "inspect", "--palette", "3", docPath); err == nil {
		t.Fatalf("expected out of range palette error")
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runCLI(t, "token", "--subject", "ci", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	claims, err := models.ValidateJWTToken(strings.TrimSpace(out), "cli-secret")
	if err != nil {
		t.Fatalf("minted token invalid: %v", err)
	}
	if claims.Subject != "ci" || claims.Scope != models.ScopeWrite {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenCommandRequiresSecretOutsideDevMode(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEV_MODE", "false")

	if _, err := runCLI(t, "token"); err == nil {
		t.Fatalf("expected error with default secret outside dev mode")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9999")
	t.Setenv("RETENTION_DAYS", "7")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DB_TYPE", "")

	cfg := LoadConfig()
	if cfg.HTTPPort != ":9999" || cfg.RetentionDays != 7 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Fatalf("DB_TYPE default = %q", cfg.DatabaseType)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}
