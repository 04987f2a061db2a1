package app

import (
	"go.uber.org/zap"

	module "github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Modules      []module.Module
	SchemePolicy requestmeta.SchemePolicy
	Logger       *zap.Logger
}
