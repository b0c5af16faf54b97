package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStorageRepo はPostgreSQLを使用した長期ストレージリポジトリ。
type PostgresStorageRepo struct {
	db *sql.DB
}

// NewPostgresStorageRepo はPostgresStorageRepoを生成する。
func NewPostgresStorageRepo(db *sql.DB) *PostgresStorageRepo {
	return &PostgresStorageRepo{db: db}
}

// Get は指定クライアント・キーの値を取得する。見つからない場合はfalseを返す。
func (r *PostgresStorageRepo) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value
		 FROM client_storage
		 WHERE client_id = $1 AND key = $2`,
		clientID, key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get storage entry: %w", err)
	}

	return value, true, nil
}

// Put は指定クライアント・キーの値を冪等にUPSERTする。
func (r *PostgresStorageRepo) Put(ctx context.Context, clientID, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO client_storage (client_id, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (client_id, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		clientID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put storage entry: %w", err)
	}
	return nil
}

// Delete は指定クライアント・キーの値を削除する。
func (r *PostgresStorageRepo) Delete(ctx context.Context, clientID, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE client_id = $1 AND key = $2`,
		clientID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete storage entry: %w", err)
	}
	return nil
}

// DeleteByClientID は指定クライアントの全エントリを削除する。
func (r *PostgresStorageRepo) DeleteByClientID(ctx context.Context, clientID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE client_id = $1`,
		clientID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete client storage: %w", err)
	}
	return nil
}

// DeleteOlderThan は最終更新がcutoffより古いエントリを削除し、削除件数を返す。
func (r *PostgresStorageRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE updated_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale storage entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted storage entries: %w", err)
	}
	return deleted, nil
}

// compile-time interface check
var _ StorageRepository = (*PostgresStorageRepo)(nil)
