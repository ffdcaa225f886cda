package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"lightbnb/internal/model"
	"lightbnb/internal/worker"
)

// Store is the part of the query gateway used for importing.
type Store interface {
	AddUser(ctx context.Context, u *model.User) (*model.User, error)
	AddProperty(ctx context.Context, p *model.Property) (*model.Property, error)
}

type Result struct {
	Users      int `json:"users"`
	Properties int `json:"properties"`
}

type Importer struct {
	store    Store
	workers  int
	log      zerolog.Logger
	validate *validator.Validate
}

func NewImporter(store Store, workers int, log zerolog.Logger) *Importer {
	return &Importer{store: store, workers: workers, log: log, validate: validator.New()}
}

// Import inserts users first, then properties with their owner ids
// rewritten to the ids the users received. Emails are stored in lower case.
// A property whose owner was not imported is skipped. Rows that fail are
// skipped and reported together in the returned error.
func (im *Importer) Import(ctx context.Context, users []UserFixture, props []model.Property) (Result, error) {
	var (
		mu     sync.Mutex
		res    Result
		errs   []error
		owners = make(map[int]int, len(users))
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	pool := worker.NewPool(ctx, im.workers)
	for _, f := range users {
		ok := pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				fail(fmt.Errorf("user %d: %w", f.ID, err))
				return
			}
			f.Email = strings.ToLower(strings.TrimSpace(f.Email))
			if err := im.validate.Struct(f); err != nil {
				fail(fmt.Errorf("user %d: %w", f.ID, err))
				return
			}
			u, err := im.store.AddUser(ctx, &model.User{Name: f.Name, Email: f.Email, Password: f.Password})
			if err != nil {
				fail(fmt.Errorf("user %d: %w", f.ID, err))
				return
			}
			mu.Lock()
			owners[f.ID] = u.ID
			res.Users++
			mu.Unlock()
		})
		if !ok {
			fail(fmt.Errorf("user %d: %w", f.ID, ctx.Err()))
			break
		}
	}
	pool.Stop()
	im.log.Info().Int("imported", res.Users).Int("total", len(users)).Msg("users imported")

	pool = worker.NewPool(ctx, im.workers)
	for _, p := range props {
		id, ok := owners[p.OwnerID]
		if !ok {
			fail(fmt.Errorf("property %d: owner %d was not imported", p.ID, p.OwnerID))
			continue
		}
		p.OwnerID = id
		ok = pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				fail(fmt.Errorf("property %d: %w", p.ID, err))
				return
			}
			if err := im.validate.Struct(p); err != nil {
				fail(fmt.Errorf("property %d: %w", p.ID, err))
				return
			}
			if _, err := im.store.AddProperty(ctx, &p); err != nil {
				fail(fmt.Errorf("property %d: %w", p.ID, err))
				return
			}
			mu.Lock()
			res.Properties++
			mu.Unlock()
		})
		if !ok {
			fail(fmt.Errorf("property %d: %w", p.ID, ctx.Err()))
			break
		}
	}
	pool.Stop()
	im.log.Info().Int("imported", res.Properties).Int("total", len(props)).Msg("properties imported")

	return res, errors.Join(errs...)
}
