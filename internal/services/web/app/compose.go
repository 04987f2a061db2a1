package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

// ComposeInput carries the application modules and shared composition
// contracts.
type ComposeInput struct {
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds the /app/ handler from modules. Every module must mount
// under /app/ and state-changing requests from another origin are rejected.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	wrap := wrapAppModule(input.RequestSchemePolicy)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("app module is nil")
		}
		if err := mountAppModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountAppModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !isAppPrefix(prefix) {
		return fmt.Errorf("module %q must mount under /app/, got %q", feature.ID(), prefix)
	}
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	if alias := slashlessPrefixAlias(prefix); alias != "" {
		if _, taken := seen[alias]; taken {
			return nil
		}
		seen[alias] = feature.ID()
		root.Handle(alias, http.RedirectHandler(prefix, http.StatusMovedPermanently))
	}
	return nil
}

func isAppPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.AppPrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// slashlessPrefixAlias returns "/app/x" for "/app/x/" so bare area links
// redirect into the module.
func slashlessPrefixAlias(prefix string) string {
	if !isAppPrefix(prefix) || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

func wrapAppModule(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	sameOrigin := requestmeta.SameOriginWrites(policy)
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return sameOrigin(next)
	}
}
