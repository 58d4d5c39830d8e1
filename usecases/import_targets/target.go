package import_targets

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
)

// Target is the per-entity capability consumed by the import pipeline: the
// importable field schema, the natural key used for deduplication, the
// entity's own field-level invariants, and the record store operations.
// The pipeline has no other entity-specific knowledge.
type Target interface {
	EntityType() models.ImportEntityType
	FieldSchema() []models.ImportField

	// Validate runs the same field-level invariants the direct-create
	// endpoint of the entity enforces.
	Validate(record models.ImportRecord) error

	// NaturalKeyOf derives the deduplication key from a projected record.
	NaturalKeyOf(record models.ImportRecord) (string, error)

	FindByKey(ctx context.Context, exec repositories.Executor, key string) (string, error)
	Create(ctx context.Context, exec repositories.Executor, record models.ImportRecord) (string, error)
	Update(ctx context.Context, exec repositories.Executor, existingId string, record models.ImportRecord) error
}

type Registry struct {
	targets map[models.ImportEntityType]Target
}

func NewRegistry(repository *repositories.BackofficeDbRepository) Registry {
	targets := map[models.ImportEntityType]Target{}
	for _, target := range []Target{
		LeadTarget{repository: repository},
		EmployeeTarget{repository: repository},
		CandidateTarget{repository: repository},
		CheckInOutTarget{repository: repository},
	} {
		targets[target.EntityType()] = target
	}
	return Registry{targets: targets}
}

// NewRegistryOf builds a registry from an explicit target list.
func NewRegistryOf(targets ...Target) Registry {
	byType := make(map[models.ImportEntityType]Target, len(targets))
	for _, target := range targets {
		byType[target.EntityType()] = target
	}
	return Registry{targets: byType}
}

func (r Registry) TargetFor(entityType models.ImportEntityType) (Target, error) {
	target, ok := r.targets[entityType]
	if !ok {
		return nil, errors.Wrapf(models.ErrUnknownEntityType, "no import target for %s", entityType)
	}
	return target, nil
}
