package seeder

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/store"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, s store.DocumentStore) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("nil store")
	}
	total := 0
	for _, sd := range r.Seeders {
		if sd == nil {
			continue
		}
		n, err := sd.Run(ctx, s)
		total += n
		if err != nil {
			return total, fmt.Errorf("seed %s: %w", sd.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] name=%s created=%d", sd.Name(), n)
		}
	}
	return total, nil
}
