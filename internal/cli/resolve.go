package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
)

// resolveActivity loads the activity named by a full ID or a unique ID
// prefix such as the eight characters shown in listings.
func resolveActivity(ctx context.Context, app *App, input string) (*domain.Activity, error) {
	if input == "" {
		return nil, fmt.Errorf("activity ID is required")
	}
	id, err := app.Activities.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	return app.Activities.GetByID(ctx, id)
}
