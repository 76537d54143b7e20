package errors

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pkgErrorsPath = "github.com/pkg/errors"
	facadePath    = "fintrack/internal/errors"
)

// Domain, usecase and infra code wraps through this package. Delivery code
// and the entrypoint use pkg/errors directly.
func TestErrorsImportConvention(t *testing.T) {
	root := filepath.Join("..", "..")

	forbidden := map[string]string{
		filepath.Join("internal", "domain"):   pkgErrorsPath,
		filepath.Join("internal", "usecase"):  pkgErrorsPath,
		filepath.Join("internal", "infra"):    pkgErrorsPath,
		filepath.Join("internal", "delivery"): facadePath,
		"cmd":                                 facadePath,
	}

	checked := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		var banned string
		for prefix, importPath := range forbidden {
			if strings.HasPrefix(rel, prefix+string(filepath.Separator)) {
				banned = importPath
			}
		}
		if banned == "" {
			return nil
		}

		file, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range file.Imports {
			importPath, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				return err
			}
			assert.NotEqual(t, banned, importPath, "%s", rel)
		}
		checked++

		return nil
	})
	require.NoError(t, err)
	assert.Positive(t, checked)
}
