package seeder

import (
	"context"

	"github.com/postmodernjester/rolodex/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
