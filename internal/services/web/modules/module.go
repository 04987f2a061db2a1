// Package modules defines web module registry helpers.
package modules

import (
	"github.com/nominaweb/nominaweb/internal/backend"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	module "github.com/nominaweb/nominaweb/internal/services/web/module"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the backend collections and shared infrastructure
// required to compose the web module registry. Each module receives only the
// collections it reads.
type Dependencies struct {
	Services     backend.Services
	Files        filestore.Store
	Audit        *auditlog.Recorder
	Base         modulehandler.Base
	SchemePolicy requestmeta.SchemePolicy
}
