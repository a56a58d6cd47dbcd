package crud

import (
	"context"
	"fmt"

	"wapoki-api/internal/domain/catalog"
)

// WriteHook ajusta el cuerpo de una escritura antes de validar y ligar
// (ej. usuarios: hashear password). Muta el mapa recibido.
type WriteHook func(body map[string]any) error

// Service implementa las cuatro operaciones uniformes sobre cualquier
// entidad del catálogo. No guarda estado propio: cada llamada resuelve la
// entidad, valida y delega en el repositorio.
type Service struct {
	repo  Repository
	hooks map[string]WriteHook
}

// Option configura el Service.
type Option func(*Service)

// WithWriteHook registra un hook de escritura para una entidad (por nombre
// canónico). Aplica a create y update, también vía alias.
func WithWriteHook(entity string, h WriteHook) Option {
	return func(s *Service) {
		s.hooks[entity] = h
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		hooks: map[string]WriteHook{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Resolve expone la búsqueda de catálogo para los handlers.
func (s *Service) Resolve(name string) (catalog.Entity, error) {
	e, ok := catalog.Get(name)
	if !ok {
		return catalog.Entity{}, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return e, nil
}

// List devuelve todas las filas de la entidad con sus FKs resueltas.
func (s *Service) List(ctx context.Context, name string) ([]map[string]any, error) {
	e, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, e)
}

// Create valida, inserta y devuelve la clave generada junto al eco del
// cuerpo recibido (sin campos secretos).
func (s *Service) Create(ctx context.Context, name string, body map[string]any) (map[string]any, error) {
	e, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := s.applyHook(e, body); err != nil {
		return nil, err
	}
	values, err := BindRecord(e, body)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, e, values)
	if err != nil {
		return nil, err
	}

	out := map[string]any{e.PK: id}
	for k, v := range body {
		out[k] = v
	}
	for _, f := range e.Fields {
		if f.Secret {
			delete(out, f.Name)
		}
	}
	return out, nil
}

// Update reemplaza el registro completo por id. Cero filas afectadas llega
// como ErrNotFound desde el repositorio.
func (s *Service) Update(ctx context.Context, name string, id int64, body map[string]any) (catalog.Entity, error) {
	e, err := s.Resolve(name)
	if err != nil {
		return catalog.Entity{}, err
	}
	if err := s.applyHook(e, body); err != nil {
		return e, err
	}
	values, err := BindRecord(e, body)
	if err != nil {
		return e, err
	}
	return e, s.repo.Update(ctx, e, id, values)
}

// Delete borra por id (borrado físico, sin soft delete).
func (s *Service) Delete(ctx context.Context, name string, id int64) (catalog.Entity, error) {
	e, err := s.Resolve(name)
	if err != nil {
		return catalog.Entity{}, err
	}
	return e, s.repo.Delete(ctx, e, id)
}

func (s *Service) applyHook(e catalog.Entity, body map[string]any) error {
	if h, ok := s.hooks[e.Name]; ok {
		return h(body)
	}
	return nil
}
