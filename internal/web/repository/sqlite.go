package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/models"
)

// ============================================================
// SQLite Scenario Repository
// ============================================================

// ErrNotFound сигнализирует об отсутствии сценария с данным id.
var ErrNotFound = errors.New("scenario not found")

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции из указанного sql-файла.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Insert persists one scenario. Metric blocks are stored as JSON text;
// this store never interprets them after creation.
func (r *Repository) Insert(ctx context.Context, s *models.Scenario) error {
	baseline, err := json.Marshal(s.Baseline)
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	vision, err := json.Marshal(s.Vision)
	if err != nil {
		return fmt.Errorf("encode vision: %w", err)
	}
	improvements, err := json.Marshal(s.Improvements)
	if err != nil {
		return fmt.Errorf("encode improvements: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO scenarios (id, name, alley_id, alley_name, alley_address, design_type, description, created_at, baseline, vision, improvements)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, s.ID, s.Name, s.AlleyID, s.AlleyName, s.AlleyAddress, s.DesignType, s.Description, s.CreatedAt, string(baseline), string(vision), string(improvements))
	if err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}
	return nil
}

// List возвращает сценарии в порядке вставки.
func (r *Repository) List(ctx context.Context) ([]models.Scenario, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, alley_id, alley_name, alley_address, design_type, description, created_at, baseline, vision, improvements
        FROM scenarios
        ORDER BY rowid
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		s, err := scanScenario(rows.Scan)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, rows.Err()
}

// GetByID возвращает один сценарий или ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, alley_id, alley_name, alley_address, design_type, description, created_at, baseline, vision, improvements
        FROM scenarios
        WHERE id = ?
    `, id)

	s, err := scanScenario(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes one scenario. Deleting an absent id is a silent no-op:
// the stored list is unchanged and no error is reported.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	return nil
}

func scanScenario(scan func(dest ...any) error) (models.Scenario, error) {
	var s models.Scenario
	var baseline, vision, improvements string
	if err := scan(&s.ID, &s.Name, &s.AlleyID, &s.AlleyName, &s.AlleyAddress, &s.DesignType, &s.Description, &s.CreatedAt, &baseline, &vision, &improvements); err != nil {
		return models.Scenario{}, err
	}
	if err := json.Unmarshal([]byte(baseline), &s.Baseline); err != nil {
		return models.Scenario{}, fmt.Errorf("decode baseline: %w", err)
	}
	if err := json.Unmarshal([]byte(vision), &s.Vision); err != nil {
		return models.Scenario{}, fmt.Errorf("decode vision: %w", err)
	}
	if err := json.Unmarshal([]byte(improvements), &s.Improvements); err != nil {
		return models.Scenario{}, fmt.Errorf("decode improvements: %w", err)
	}
	return s, nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
