// Package leads provides the sqlite-backed lead record store. The
// record store is the source of truth for lead data; the cache/index
// store is advisory only.
package leads

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/huntly/leadsearch/internal/domain"
)

// Repo implements lead record persistence over sqlite.
type Repo struct {
	db *sql.DB
}

// New opens or creates a sqlite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func New(dbPath string) (*Repo, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Repo{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		company TEXT NOT NULL,
		contact TEXT,
		email TEXT,
		phone TEXT,
		website TEXT,
		industry TEXT,
		location TEXT,
		revenue TEXT,
		employees TEXT,
		description TEXT,
		keywords TEXT,
		score INTEGER DEFAULT 0,
		status TEXT DEFAULT 'new',
		priority TEXT DEFAULT 'medium',
		indexed_at TIMESTAMP,
		last_contact TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_leads_industry ON leads(industry);
	CREATE INDEX IF NOT EXISTS idx_leads_location ON leads(location);
	CREATE INDEX IF NOT EXISTS idx_leads_indexed_at ON leads(indexed_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the underlying database handle.
func (r *Repo) Close() error {
	return r.db.Close()
}

// Ping checks record store connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create inserts a lead and fills its ID and timestamps. Used by the
// ingestion collaborator; the search core itself never creates leads.
func (r *Repo) Create(ctx context.Context, lead *domain.Lead) error {
	now := time.Now().UTC()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (
			user_id, company, contact, email, phone, website,
			industry, location, revenue, employees, description, keywords,
			score, status, priority, last_contact, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.UserID, lead.Company, lead.Contact, lead.Email, lead.Phone, lead.Website,
		lead.Industry, lead.Location, lead.Revenue, lead.Employees, lead.Description,
		encodeKeywords(lead.Keywords),
		lead.Score, lead.Status, lead.Priority, lead.LastContact, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert lead id: %w", err)
	}
	lead.ID = id
	return nil
}

// FindByID returns a single lead by ID.
func (r *Repo) FindByID(ctx context.Context, id int64) (domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, selectLeads+` WHERE id = ?`, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	if err != nil {
		return domain.Lead{}, fmt.Errorf("find lead %d: %w", id, err)
	}
	return lead, nil
}

// FindByIDs returns the leads matching the given IDs, in no particular order.
func (r *Repo) FindByIDs(ctx context.Context, ids []int64) ([]domain.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		selectLeads+` WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("find leads by ids: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Search performs the relational fallback: OR semantics across terms and
// phrases on company/description (plus substring probes on company and
// industry for the first term), AND semantics across filter predicates,
// all case-insensitive substring matching.
func (r *Repo) Search(
	ctx context.Context, terms, phrases []string, f domain.Filters, limit int,
) ([]domain.Lead, error) {
	var (
		where []string
		args  []any
	)

	searchTerms := make([]string, 0, len(terms)+len(phrases))
	searchTerms = append(searchTerms, terms...)
	searchTerms = append(searchTerms, phrases...)

	if len(searchTerms) > 0 {
		var or []string
		for _, term := range searchTerms {
			or = append(or, "company LIKE ? COLLATE NOCASE", "description LIKE ? COLLATE NOCASE")
			args = append(args, contains(term), contains(term))
		}
		// Substring probes on the leading term mirror the broad
		// company/industry match of the text-search column.
		or = append(or, "industry LIKE ? COLLATE NOCASE")
		args = append(args, contains(searchTerms[0]))
		where = append(where, "("+strings.Join(or, " OR ")+")")
	}

	filterSQL, filterArgs := filterPredicates(f)
	where = append(where, filterSQL...)
	args = append(args, filterArgs...)

	query := selectLeads
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// FilterByPredicates returns the subset of the given IDs that also satisfy
// the filters. Used to post-filter index-intersection candidates.
func (r *Repo) FilterByPredicates(ctx context.Context, ids []int64, f domain.Filters) ([]domain.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+4)
	for _, id := range ids {
		args = append(args, id)
	}

	where := []string{"id IN (" + placeholders + ")"}
	filterSQL, filterArgs := filterPredicates(f)
	where = append(where, filterSQL...)
	args = append(args, filterArgs...)

	rows, err := r.db.QueryContext(ctx,
		selectLeads+" WHERE "+strings.Join(where, " AND ")+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("filter leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// ListBatch pages through the corpus (or the given ID set) for bulk indexing.
func (r *Repo) ListBatch(ctx context.Context, ids []int64, offset, limit int) ([]domain.Lead, error) {
	var (
		query = selectLeads
		args  []any
	)

	if len(ids) > 0 {
		placeholders := strings.Repeat("?,", len(ids))
		placeholders = placeholders[:len(placeholders)-1]
		query += " WHERE id IN (" + placeholders + ")"
		for _, id := range ids {
			args = append(args, id)
		}
	}

	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads batch: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Count returns the total number of leads.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// CountIndexed returns the number of leads with a non-null indexed_at.
func (r *Repo) CountIndexed(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE indexed_at IS NOT NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count indexed leads: %w", err)
	}
	return n, nil
}

// CountByIDs returns how many of the given IDs exist.
func (r *Repo) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE id IN (`+placeholders+`)`, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads by ids: %w", err)
	}
	return n, nil
}

// UpdateIndexedAt records the moment a lead entered the token index.
// The indexer is the only caller.
func (r *Repo) UpdateIndexedAt(ctx context.Context, id int64, t time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET indexed_at = ? WHERE id = ?`, t, id)
	if err != nil {
		return fmt.Errorf("update indexed_at for lead %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// DistinctPrefix returns distinct values of a whitelisted column that
// start with prefix, for autosuggest.
func (r *Repo) DistinctPrefix(ctx context.Context, column, prefix string, limit int) ([]string, error) {
	switch column {
	case "company", "industry":
		// allowed
	default:
		return nil, fmt.Errorf("distinct prefix: column %q not allowed", column)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM leads
		 WHERE `+column+` LIKE ? COLLATE NOCASE AND `+column+` != ''
		 ORDER BY `+column+` LIMIT ?`,
		prefix+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("distinct %s prefix: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan distinct %s: %w", column, err)
		}
		if v.Valid && v.String != "" {
			values = append(values, v.String)
		}
	}
	return values, rows.Err()
}

// filterPredicates converts filters into AND-ed SQL predicates.
func filterPredicates(f domain.Filters) ([]string, []any) {
	var (
		where []string
		args  []any
	)

	if f.Industry != "" {
		where = append(where, "industry LIKE ? COLLATE NOCASE")
		args = append(args, contains(f.Industry))
	}
	if f.Location != "" {
		where = append(where, "location LIKE ? COLLATE NOCASE")
		args = append(args, contains(f.Location))
	}
	if f.CompanySize != "" {
		where = append(where, "employees LIKE ? COLLATE NOCASE")
		args = append(args, contains(f.CompanySize))
	}
	if f.RevenueRange != "" {
		where = append(where, "revenue LIKE ? COLLATE NOCASE")
		args = append(args, contains(f.RevenueRange))
	}
	for _, kw := range f.Keywords {
		where = append(where,
			"(company LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE OR industry LIKE ? COLLATE NOCASE)")
		args = append(args, contains(kw), contains(kw), contains(kw))
	}

	return where, args
}

func contains(s string) string {
	return "%" + s + "%"
}
