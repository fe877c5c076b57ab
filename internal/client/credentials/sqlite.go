package credentials

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/codemonk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/codemonk/internal/common"
	"github.com/dmitrijs2005/codemonk/internal/filex"
)

// SQLiteStore keeps the token in the client_state table of the local database.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// OpenSQLite creates (if needed) and migrates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != "" && !strings.HasPrefix(path, ":") && !strings.HasPrefix(path, "file:") {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}
	db, err := InitDatabase(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	token, _, err := s.repo.Get(ctx, common.CredentialKey)
	return token, err
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.CredentialKey, token)
}

func (s *SQLiteStore) Erase(ctx context.Context) error {
	return s.repo.Delete(ctx, common.CredentialKey)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
