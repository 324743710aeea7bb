package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldService/pkg/psqlbuilder"
)

const tableName = "kv_entries"

// Entry запись локального хранилища
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Repository key-value хранилище на SQL (sqlite3 на устройстве или postgres)
type Repository struct {
	db      DBExecutor
	driver  string
	builder psqlbuilder.Builder
	now     func() time.Time
}

// NewRepository создает новый экземпляр репозитория
// driver: "sqlite3" или "postgres", определяет формат плейсхолдеров и DDL
func NewRepository(db DBExecutor, driver string) *Repository {
	return &Repository{
		db:      db,
		driver:  driver,
		builder: psqlbuilder.ForDriver(driver),
		now:     time.Now,
	}
}

// Init создает таблицу, если ее еще нет
func (r *Repository) Init(ctx context.Context) error {
	timestampType := "TIMESTAMP"
	if r.driver == "postgres" {
		timestampType = "TIMESTAMPTZ"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at %s NOT NULL
)`, tableName, timestampType)

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: Init - create table: %v", ErrExecQuery, err)
	}
	return nil
}

// Get возвращает значение по ключу
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	entry, err := r.GetEntry(ctx, key)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// GetEntry возвращает запись целиком
func (r *Repository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	query, args, err := r.builder.Select("key", "value", "updated_at").
		From(tableName).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEntry - build select query: %v", ErrBuildQuery, err)
	}

	var entry Entry
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEntry - scan entry: %v", ErrScanRow, err)
	}
	return &entry, nil
}

// GetMany возвращает значения для набора ключей, отсутствующие ключи пропускаются
func (r *Repository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	query, args, err := r.builder.Select("key", "value").
		From(tableName).
		Where(squirrel.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMany - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: GetMany - scan entry: %v", ErrScanRow, err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMany - iterate rows: %v", ErrScanRow, err)
	}
	return result, nil
}

// Set сохраняет значение (вставка или обновление)
func (r *Repository) Set(ctx context.Context, key, value string) error {
	query, args, err := r.builder.Insert(tableName).
		Columns("key", "value", "updated_at").
		Values(key, value, r.now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// SetMany сохраняет несколько значений одной транзакцией: либо все, либо ничего
// Если репозиторий уже работает внутри *sql.Tx, используется она
func (r *Repository) SetMany(ctx context.Context, values map[string]string) error {
	beginner, ok := r.db.(TxBeginner)
	if !ok {
		return r.setEach(ctx, values)
	}

	tx, err := beginner.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: SetMany - begin: %v", ErrTransaction, err)
	}

	inTx := *r
	inTx.db = tx
	if err := inTx.setEach(ctx, values); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: SetMany - rollback: %v (after: %w)", ErrTransaction, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: SetMany - commit: %v", ErrTransaction, err)
	}
	return nil
}

func (r *Repository) setEach(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := r.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Delete удаляет ключи, отсутствующие ключи не считаются ошибкой
func (r *Repository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := r.builder.Delete(tableName).
		Where(squirrel.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}
