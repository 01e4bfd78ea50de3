package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
}

func TestScannerScan(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"main.py":                   "print('hello')",
		"utils/helper.py":           "x = 1",
		"types/stubs.pyi":           "def f() -> int: ...",
		"README.md":                 "# Test",
		"app.js":                    "console.log('hi')",
		".hidden/secret.py":         "hidden",
		"__pycache__/main.pyc":      "bytecode",
		"venv/lib/site.py":          "site",
		"node_modules/pkg/index.py": "vendored",
	})

	results, err := Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range results {
		found[f.Path] = true
	}

	expected := []string{"main.py", "utils/helper.py", "types/stubs.pyi"}
	for _, want := range expected {
		if !found[want] {
			t.Errorf("Expected to find %s, but it wasn't found", want)
		}
	}

	excluded := []string{
		"README.md",
		"app.js",
		".hidden/secret.py",
		"__pycache__/main.pyc",
		"venv/lib/site.py",
		"node_modules/pkg/index.py",
	}
	for _, skip := range excluded {
		if found[skip] {
			t.Errorf("Expected %s to be excluded, but it was found", skip)
		}
	}
}

func TestScannerWithGfcignore(t *testing.T) {
	tmpDir := t.TempDir()

	gfcignoreContent := `# Ignore generated files
*_pb2.py
# Ignore migrations
migrations/
# Ignore a specific file
scratch.py
`
	writeTree(t, tmpDir, map[string]string{
		".gfcignore":              gfcignoreContent,
		"app.py":                  "x = 1",
		"api_pb2.py":              "generated",
		"migrations/0001_init.py": "migration",
		"scratch.py":              "temp",
		"lib/core.py":             "y = 2",
	})

	// SkipHidden must not hide the ignore file from the loader
	results, err := Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range results {
		found[f.Path] = true
	}

	for _, want := range []string{"app.py", "lib/core.py"} {
		if !found[want] {
			t.Errorf("Expected to find %s", want)
		}
	}

	for _, ignored := range []string{"api_pb2.py", "migrations/0001_init.py", "scratch.py"} {
		if found[ignored] {
			t.Errorf("Expected %s to be ignored", ignored)
		}
	}
}

func TestScannerSkipHidden(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"visible.py":       "x = 1",
		".hidden/inner.py": "y = 2",
		".conftest_sim.py": "z = 3",
	})

	results, err := Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	for _, f := range results {
		if f.Path != "visible.py" {
			t.Errorf("Expected only visible.py, also found %s", f.Path)
		}
	}

	opts := DefaultOptions()
	opts.SkipHidden = false
	results, err = New(opts).Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range results {
		found[f.Path] = true
	}
	if !found[".hidden/inner.py"] {
		t.Error("Should find .hidden/inner.py when SkipHidden=false")
	}
}

func TestScannerFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	content := "print('hello world')\n"
	writeTree(t, tmpDir, map[string]string{"main.py": content})

	results, err := Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(results))
	}
	if results[0].Size != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), results[0].Size)
	}
	if !filepath.IsAbs(results[0].FullPath) {
		t.Errorf("Expected absolute FullPath, got %s", results[0].FullPath)
	}
}

func TestIgnorePattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		match   bool
	}{
		// Simple patterns
		{"*.py", "file.py", true},
		{"*.py", "dir/file.py", true},
		{"*.py", "file.txt", false},
		{"build/", "build/file.py", true},
		{"build/", "other/build/file.py", true},
		{"build/", "builder.py", false},

		// Anchored patterns
		{"/build/", "build/file.py", true},
		{"/build/", "src/build/file.py", false},
		{"src/*.py", "src/app.py", true},
		{"src/*.py", "src/deep/app.py", false},

		// Double asterisk
		{"**/test/**", "test/file.py", true},
		{"**/test/**", "src/deep/test/file.py", true},
		{"**/test/**", "testing/file.py", false},

		// Question mark
		{"file?.py", "file1.py", true},
		{"file?.py", "file12.py", false},

		// Negation patterns still match; the caller flips the result
		{"!*.py", "file.py", true},
	}

	for _, tt := range tests {
		pattern := ParseIgnorePattern(tt.pattern)
		result := pattern.Match(tt.path)
		if result != tt.match {
			t.Errorf("Pattern %q matching %q: got %v, want %v", tt.pattern, tt.path, result, tt.match)
		}
	}
}

func TestMatchesAnyNegation(t *testing.T) {
	patterns := []IgnorePattern{
		ParseIgnorePattern("*.py"),
		ParseIgnorePattern("!keep.py"),
	}

	if !MatchesAny("drop.py", patterns) {
		t.Error("Expected drop.py to be ignored")
	}
	if MatchesAny("keep.py", patterns) {
		t.Error("Expected keep.py to be un-ignored by negation")
	}
}
