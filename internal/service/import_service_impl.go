package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/importer"
	"github.com/alexanderramin/cadence/internal/repository"
)

type importService struct {
	activities  repository.ActivityRepo
	completions repository.CompletionRepo
	covers      repository.CoverRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewImportService(
	activities repository.ActivityRepo,
	completions repository.CompletionRepo,
	covers repository.CoverRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		activities:  activities,
		completions: completions,
		covers:      covers,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates and stores every record of schema in one
// transaction. Nothing is written when any record fails.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{"records": len(schema.Activities)}
	defer observeUseCase(ctx, s.observer, "import-activities", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, &app.ValidationError{Errs: errs}
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &app.ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		activities := repository.NewSQLiteActivityRepo(tx)
		completions := repository.NewSQLiteCompletionRepo(tx)
		covers := repository.NewSQLiteCoverRepo(tx)

		for _, g := range generated {
			if err := activities.Create(ctx, g.Activity); err != nil {
				return fmt.Errorf("creating activity %q: %w", g.Activity.Name, err)
			}
			for _, d := range g.State.CompletedDates() {
				if err := completions.SetCompleted(ctx, g.Activity.ID, d); err != nil {
					return fmt.Errorf("importing completions of %q: %w", g.Activity.Name, err)
				}
				result.Completions++
			}
			for _, d := range g.State.SkippedDates() {
				if err := completions.SetSkipped(ctx, g.Activity.ID, d); err != nil {
					return fmt.Errorf("importing skips of %q: %w", g.Activity.Name, err)
				}
				result.Skips++
			}
			for d, note := range g.State.Notes() {
				if err := completions.SetNote(ctx, g.Activity.ID, d, note); err != nil {
					return fmt.Errorf("importing notes of %q: %w", g.Activity.Name, err)
				}
				result.Notes++
			}
			if g.Cover != "" {
				if err := covers.Set(ctx, g.Activity.ID, g.Cover); err != nil {
					return fmt.Errorf("importing cover of %q: %w", g.Activity.Name, err)
				}
			}
			result.Activities = append(result.Activities, g.Activity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["completions"] = result.Completions
	return result, nil
}

// Export writes every activity, archived ones included, with its history.
// It returns the number of activities written.
func (s *importService) Export(ctx context.Context, w io.Writer, format importer.Format) (n int, err error) {
	defer observeUseCase(ctx, s.observer, "export-activities", time.Now().UTC(), map[string]any{"format": string(format)}, &err)

	activities, err := s.activities.List(ctx, true)
	if err != nil {
		return 0, err
	}
	schema := &importer.ImportSchema{Activities: make([]importer.ActivityImport, 0, len(activities))}
	for _, a := range activities {
		state, err := s.completions.Load(ctx, a.ID)
		if err != nil {
			return 0, fmt.Errorf("loading history of %q: %w", a.Name, err)
		}
		cover, err := s.covers.Get(ctx, a.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return 0, err
		}
		schema.Activities = append(schema.Activities, importer.FromActivity(a, state, cover))
	}
	if err := importer.Encode(w, schema, format); err != nil {
		return 0, fmt.Errorf("encoding export: %w", err)
	}
	return len(schema.Activities), nil
}
