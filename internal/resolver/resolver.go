// # internal/resolver/resolver.go
package resolver

import (
	"log/slog"
	"path/filepath"
	"strings"

	"pycycle/internal/errs"
)

// ModuleName maps a file path under root to its fully qualified module name:
// the relative path with the extension stripped, segments joined with ".".
// A path outside root is a scanner/resolver integration bug and fails loudly.
func ModuleName(root, filePath string) (string, error) {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return "", errs.WithPath(errs.Wrap(err, errs.CodePathOutsideRoot, "file path not relative to root"), filePath)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errs.WithPath(errs.New(errs.CodePathOutsideRoot, "file path outside project root"), filePath)
	}

	parts := strings.Split(rel, string(filepath.Separator))
	last := parts[len(parts)-1]
	parts[len(parts)-1] = strings.TrimSuffix(last, filepath.Ext(last))

	return strings.Join(parts, "."), nil
}

// ResolveFromImport resolves a from-style import to its target module name.
// level counts the leading dots: 0 is an absolute import, 1 means the current
// package, each further level goes up one package. hasModule distinguishes
// "from . import x" (module absent, handled per imported name by the caller)
// from "from .pkg import x"; an empty string is never an implicit absence marker.
//
// When level exceeds the package depth the surplus is clamped at the project
// top instead of failing. The condition is logged for diagnosis.
func ResolveFromImport(fromFQN string, level int, module string, hasModule bool) string {
	if level == 0 {
		return module
	}

	pkgParts := strings.Split(fromFQN, ".")
	pkgParts = pkgParts[:len(pkgParts)-1]

	if level > 1 {
		drop := level - 1
		if drop >= len(pkgParts) {
			slog.Debug("relative import level exceeds package depth, clamping",
				"module", fromFQN, "level", level, "depth", len(pkgParts))
			pkgParts = nil
		} else {
			pkgParts = pkgParts[:len(pkgParts)-drop]
		}
	}

	if hasModule {
		pkgParts = append(pkgParts, module)
	}
	return strings.Join(pkgParts, ".")
}
