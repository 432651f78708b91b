// Package storage persists the domain model in SQLite. Rows map back to
// entities through the core rehydration factories, so values validated at
// construction round-trip without re-validation.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"expensemanager/internal/core"
	"expensemanager/internal/services"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Users

func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, password_salt, is_active, last_login_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID(), u.Name(), u.Email().String(), u.Password().Hash(), u.Password().Salt(),
		boolToInt(u.IsActive()), u.LastLoginAt(), u.CreatedAt(), u.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*core.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, password_salt, is_active, last_login_at, created_at, updated_at
		FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, password_salt, is_active, last_login_at, created_at, updated_at
		FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, u *core.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, password_hash = ?, password_salt = ?, is_active = ?, last_login_at = ?, updated_at = ?
		WHERE id = ?`,
		u.Name(), u.Email().String(), u.Password().Hash(), u.Password().Salt(),
		boolToInt(u.IsActive()), u.LastLoginAt(), u.UpdatedAt(), u.ID())
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (*core.User, error) {
	var (
		id, name, email, hash, salt string
		isActive                    int
		lastLoginAt, updatedAt      sql.NullTime
		createdAt                   time.Time
	)
	err := row.Scan(&id, &name, &email, &hash, &salt, &isActive, &lastLoginAt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return core.RehydrateUser(id, createdAt, nullTimePtr(updatedAt), name,
		core.RehydrateEmail(email),
		core.RehydrateHashedPassword(hash, salt),
		isActive != 0, nullTimePtr(lastLoginAt)), nil
}

// Categories

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c *core.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID(), c.Name(), c.Description(), c.UserID(), c.CreatedAt(), c.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (*core.Category, error) {
	return r.scanCategory(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM categories WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetCategoryByName(ctx context.Context, userID, name string) (*core.Category, error) {
	return r.scanCategory(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM categories WHERE user_id = ? AND name = ?`, userID, name))
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, userID string) ([]*core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM categories WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*core.Category
	for rows.Next() {
		var (
			id, name, description, owner string
			createdAt                    time.Time
			updatedAt                    sql.NullTime
		)
		if err := rows.Scan(&id, &name, &description, &owner, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, core.RehydrateCategory(id, createdAt, nullTimePtr(updatedAt), name, description, owner))
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c *core.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name(), c.Description(), c.UpdatedAt(), c.ID())
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) scanCategory(row *sql.Row) (*core.Category, error) {
	var (
		id, name, description, userID string
		createdAt                     time.Time
		updatedAt                     sql.NullTime
	)
	err := row.Scan(&id, &name, &description, &userID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return core.RehydrateCategory(id, createdAt, nullTimePtr(updatedAt), name, description, userID), nil
}

// Expenses

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e *core.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, description, amount_cents, currency, date, type, payment_method, notes, user_id, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID(), e.Description(), e.Amount().Cents(), e.Amount().Currency(), e.Date(),
		string(e.Type()), string(e.PaymentMethod()), e.Notes(), e.UserID(), e.CategoryID(),
		e.CreatedAt(), e.UpdatedAt())
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (*core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, currency, date, type, payment_method, notes, user_id, category_id, created_at, updated_at
		FROM expenses WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get expense: %w", err)
		}
		return nil, services.ErrNotFound
	}
	return scanExpense(rows)
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID string, year, month int) ([]*core.Expense, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, currency, date, type, payment_method, notes, user_id, category_id, created_at, updated_at
		FROM expenses WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []*core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e *core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET description = ?, amount_cents = ?, currency = ?, date = ?, type = ?, payment_method = ?, notes = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		e.Description(), e.Amount().Cents(), e.Amount().Currency(), e.Date(),
		string(e.Type()), string(e.PaymentMethod()), e.Notes(), e.CategoryID(),
		e.UpdatedAt(), e.ID())
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) CategoryInUse(ctx context.Context, categoryID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM expenses WHERE category_id = ?`, categoryID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count expenses by category: %w", err)
	}
	return n > 0, nil
}

func scanExpense(rows *sql.Rows) (*core.Expense, error) {
	var (
		id, description, currency, typ, method, notes, userID, categoryID string
		cents                                                             int64
		date, createdAt                                                   time.Time
		updatedAt                                                         sql.NullTime
	)
	err := rows.Scan(&id, &description, &cents, &currency, &date, &typ, &method, &notes, &userID, &categoryID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return core.RehydrateExpense(id, createdAt, nullTimePtr(updatedAt), description,
		core.RehydrateMoney(cents, currency), date, userID, categoryID,
		core.ExpenseType(typ), core.PaymentMethod(method), notes), nil
}

// requireRow maps a zero-row-affected write to ErrNotFound so updates and
// deletes of missing ids behave like reads.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
