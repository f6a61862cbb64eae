package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements store.ExpenseStore, store.UserStore and
// store.CategoryStore over a single sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

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

const expenseColumns = `e.id, e.user_id, e.category_id, e.amount, e.date, e.description, e.created_at, e.updated_at`

// FindByOwner implements store.ExpenseStore. Rows come back in date order so
// group members keep a stable, store-defined insertion order.
func (r *SQLiteRepository) FindByOwner(ctx context.Context, email string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		  FROM expenses e
		  JOIN users u ON u.id = e.user_id
		 WHERE u.email = ?
		 ORDER BY e.date, e.id`, email)
	if err != nil {
		return nil, fmt.Errorf("query expenses by owner: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// FindByOwnerAndDateRange implements store.ExpenseStore. Both bounds are
// inclusive.
func (r *SQLiteRepository) FindByOwnerAndDateRange(ctx context.Context, email string, start, end core.Date) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		  FROM expenses e
		  JOIN users u ON u.id = e.user_id
		 WHERE u.email = ? AND e.date BETWEEN ? AND ?
		 ORDER BY e.date, e.id`, email, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("query expenses by owner and range: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *SQLiteRepository) FindExpenseByID(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		  FROM expenses e
		 WHERE e.id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.NewNotFound("expense", id)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("query expense by id: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, category_id, amount, date, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.CategoryID, e.Amount.String(), e.Date.String(),
		e.Description, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "expense saved",
		"id", e.ID,
		"owner", e.UserID,
		"amount", e.Amount.String(),
		"date", e.Date.String())
	return nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		   SET category_id = ?, amount = ?, date = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		e.CategoryID, e.Amount.String(), e.Date.String(), e.Description,
		formatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res, "expense", e.ID)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res, "expense", id)
}

func (r *SQLiteRepository) FindAllUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, first_name, last_name, created_at, updated_at
		  FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *SQLiteRepository) FindUserByEmail(ctx context.Context, email string) (core.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, created_at, updated_at
		  FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.NewNotFound("user", email)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("query user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FirstName, u.LastName, formatTime(u.CreatedAt), formatTime(u.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindCategoriesByOwner(ctx context.Context, email string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.description, c.user_id, c.created_at, c.updated_at
		  FROM categories c
		  JOIN users u ON u.id = c.user_id
		 WHERE u.email = ?
		 ORDER BY c.name, c.id`, email)
	if err != nil {
		return nil, fmt.Errorf("query categories by owner: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) FindCategoryByID(ctx context.Context, id string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, user_id, created_at, updated_at
		  FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.NewNotFound("category", id)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("query category by id: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.UserID, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Description, formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res, "category", c.ID)
}

// DeleteCategory removes the category row only. Expenses keep their old
// category_id; aggregation routes them to the placeholder group.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res, "category", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e                    core.Expense
		amount, date         string
		createdAt, updatedAt string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &amount, &date,
		&e.Description, &createdAt, &updatedAt)
	if err != nil {
		return core.Expense{}, err
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if e.Date, err = core.ParseDate(date); err != nil {
		return core.Expense{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.Expense{}, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func scanUser(row rowScanner) (core.User, error) {
	var (
		u                    core.User
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &createdAt, &updatedAt)
	if err != nil {
		return core.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func scanCategory(row rowScanner) (core.Category, error) {
	var (
		c                    core.Category
		createdAt, updatedAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.UserID, &createdAt, &updatedAt)
	if err != nil {
		return core.Category{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.Category{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.NewNotFound(kind, id)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
