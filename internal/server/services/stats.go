package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/dbx"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/redis/go-redis/v9"
)

// Stats holds the collection counters exposed by the stats endpoint.
type Stats struct {
	Users int64
	Files int64
}

// Status reports liveness of the two backends.
type Status struct {
	Redis bool
	DB    bool
}

// StatsService answers the health and counters endpoints.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	redis       *redis.Client
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, r *redis.Client) *StatsService {
	return &StatsService{db: db, repomanager: m, redis: r}
}

// Stats counts users and files inside one read-only transaction so the two
// numbers come from the same snapshot.
func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		users, err := s.repomanager.Users(tx).Count(ctx)
		if err != nil {
			return err
		}
		files, err := s.repomanager.Files(tx).Count(ctx)
		if err != nil {
			return err
		}
		out.Users, out.Files = users, files
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: counting collections: %v", common.ErrorTransientStorage, err)
	}
	return &out, nil
}

// Status pings both backends. A failing ping flips the corresponding flag
// rather than erroring; the endpoint itself always answers.
func (s *StatsService) Status(ctx context.Context) *Status {
	st := &Status{}
	st.DB = s.db.PingContext(ctx) == nil
	st.Redis = s.redis.Ping(ctx).Err() == nil
	return st
}
