package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nominaweb/nominaweb/internal/domain"
)

// Collection names under /api/.
const (
	ResourceEmpleados     = "empleados"
	ResourceCargos        = "cargos"
	ResourceContratos     = "contratos"
	ResourcePrestamos     = "prestamos"
	ResourceComprobantes  = "comprobantes"
	ResourceCuentas       = "cuentas"
	ResourceFlujoCaja     = "flujo-caja"
	ResourceDepartamentos = "departamentos"
	ResourceMunicipios    = "municipios"

	perfilPath = "/api/perfil/"
)

// Services groups the typed collections exposed by the backend.
type Services struct {
	Client        *Client
	Empleados     Resource[domain.Empleado]
	Cargos        Resource[domain.Cargo]
	Contratos     Resource[domain.Contrato]
	Prestamos     Resource[domain.Prestamo]
	Comprobantes  Resource[domain.Comprobante]
	Cuentas       Resource[domain.Cuenta]
	FlujoCaja     Resource[domain.MovimientoCaja]
	Departamentos Resource[domain.Departamento]
	Municipios    Resource[domain.Municipio]
	Perfil        PerfilService
}

// NewServices binds every collection to client.
func NewServices(client *Client) Services {
	return Services{
		Client:        client,
		Empleados:     NewResource[domain.Empleado](client, ResourceEmpleados),
		Cargos:        NewResource[domain.Cargo](client, ResourceCargos),
		Contratos:     NewResource[domain.Contrato](client, ResourceContratos),
		Prestamos:     NewResource[domain.Prestamo](client, ResourcePrestamos),
		Comprobantes:  NewResource[domain.Comprobante](client, ResourceComprobantes),
		Cuentas:       NewResource[domain.Cuenta](client, ResourceCuentas),
		FlujoCaja:     NewResource[domain.MovimientoCaja](client, ResourceFlujoCaja),
		Departamentos: NewResource[domain.Departamento](client, ResourceDepartamentos),
		Municipios:    NewResource[domain.Municipio](client, ResourceMunicipios),
		Perfil:        PerfilService{client: client},
	}
}

// PerfilService reads and edits the token owner's profile.
type PerfilService struct {
	client *Client
}

// Get fetches the profile.
func (s PerfilService) Get(ctx context.Context) (domain.Perfil, error) {
	var out domain.Perfil
	if s.client == nil {
		return out, errNotConfigured
	}
	if err := s.client.Do(ctx, http.MethodGet, perfilPath, nil, nil, &out); err != nil {
		return out, fmt.Errorf("get perfil: %w", err)
	}
	return out, nil
}

// Update PATCHes the editable profile fields.
func (s PerfilService) Update(ctx context.Context, perfil domain.Perfil) (domain.Perfil, error) {
	var out domain.Perfil
	if s.client == nil {
		return out, errNotConfigured
	}
	if err := s.client.Do(ctx, http.MethodPatch, perfilPath, nil, perfil.Changes(), &out); err != nil {
		return out, fmt.Errorf("update perfil: %w", err)
	}
	return out, nil
}

// PatchField sets one field on a record, for example a stored file URL.
func (c *Client) PatchField(ctx context.Context, resource string, id int64, field string, value any) error {
	if c == nil {
		return errNotConfigured
	}
	path := NewResource[map[string]any](c, resource).ItemPath(id)
	if err := c.Do(ctx, http.MethodPatch, path, nil, map[string]any{field: value}, nil); err != nil {
		return fmt.Errorf("patch %s %d %s: %w", resource, id, field, err)
	}
	return nil
}
