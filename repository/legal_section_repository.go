package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nyaya-backend/models"
	"nyaya-backend/search"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup by id matches no row
var ErrNotFound = errors.New("legal section not found")

// ActSectionsLimit caps the listing of a single act
const ActSectionsLimit = 500

const sectionColumns = `id, act, section, text, domain, jurisdiction, state, source_link`

// LegalSectionRepository handles read-only database operations for statute
// sections stored in the legal_sections table
type LegalSectionRepository struct {
	db *pgxpool.Pool
}

// NewLegalSectionRepository creates a new legal section repository
func NewLegalSectionRepository(db *pgxpool.Pool) *LegalSectionRepository {
	return &LegalSectionRepository{db: db}
}

// Ping checks that the store is reachable
func (r *LegalSectionRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// FindCandidates retrieves the bounded candidate set described by cq,
// ordered by act and then id
func (r *LegalSectionRepository) FindCandidates(ctx context.Context, cq search.CandidateQuery) ([]models.LegalSection, error) {
	query, args := buildCandidateSQL(cq)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// ListActs retrieves the distinct act names in ascending order
func (r *LegalSectionRepository) ListActs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT act FROM legal_sections ORDER BY act ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query acts: %w", err)
	}
	defer rows.Close()

	acts := make([]string, 0)
	for rows.Next() {
		var act string
		if err := rows.Scan(&act); err != nil {
			return nil, fmt.Errorf("failed to scan act: %w", err)
		}
		acts = append(acts, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating acts: %w", err)
	}
	return acts, nil
}

// ListByAct retrieves the sections of one act ordered by section label
func (r *LegalSectionRepository) ListByAct(ctx context.Context, act string) ([]models.LegalSection, error) {
	query := `
		SELECT ` + sectionColumns + `
		FROM legal_sections
		WHERE act = $1
		ORDER BY section ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, act, ActSectionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections for act: %w", err)
	}
	defer rows.Close()

	return scanSections(rows)
}

// GetByID retrieves a section by id
func (r *LegalSectionRepository) GetByID(ctx context.Context, id string) (*models.LegalSection, error) {
	query := `
		SELECT ` + sectionColumns + `
		FROM legal_sections
		WHERE id = $1`

	s := &models.LegalSection{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Act,
		&s.Section,
		&s.Text,
		&s.Domain,
		&s.Jurisdiction,
		&s.State,
		&s.SourceLink,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return s, nil
}

func scanSections(rows pgx.Rows) ([]models.LegalSection, error) {
	sections := make([]models.LegalSection, 0)
	for rows.Next() {
		var s models.LegalSection
		err := rows.Scan(
			&s.ID,
			&s.Act,
			&s.Section,
			&s.Text,
			&s.Domain,
			&s.Jurisdiction,
			&s.State,
			&s.SourceLink,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legal section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legal sections: %w", err)
	}
	return sections, nil
}

// sqlBuilder accumulates positional arguments
type sqlBuilder struct {
	args []interface{}
}

func (b *sqlBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) like(column, substr string) string {
	return fmt.Sprintf("%s ILIKE %s", column, b.arg(likePattern(substr)))
}

// buildCandidateSQL translates cq into a parameterised SELECT
func buildCandidateSQL(cq search.CandidateQuery) (string, []interface{}) {
	b := &sqlBuilder{}
	var where []string

	if cq.Act != "" {
		where = append(where, b.like("act", cq.Act))
	}
	if cq.Domain != "" {
		where = append(where, fmt.Sprintf("domain = %s", b.arg(cq.Domain)))
	}
	if cq.Jurisdiction != "" {
		where = append(where, fmt.Sprintf("jurisdiction = %s", b.arg(cq.Jurisdiction)))
	}
	if cq.SectionMarker != "" {
		where = append(where, b.like("section", cq.SectionMarker))
	}
	for _, marker := range cq.Excluded {
		where = append(where, fmt.Sprintf("text NOT ILIKE %s", b.arg(likePattern(marker))))
	}
	if cq.SectionLike != "" {
		where = append(where, b.like("section", cq.SectionLike))
	}

	if cq.Phrase != "" {
		or := []string{
			b.like("text", cq.Phrase),
			b.like("act", cq.Phrase),
			b.like("section", cq.Phrase),
		}
		for _, term := range cq.Terms {
			or = append(or, b.like("text", term), b.like("section", term))
		}
		if cq.ExactSection != "" {
			or = append(or, fmt.Sprintf("section = %s", b.arg(cq.ExactSection)))
		}
		where = append(where, "("+strings.Join(or, " OR ")+")")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(sectionColumns)
	sb.WriteString(" FROM legal_sections")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY act ASC, id ASC")

	limit := cq.Limit
	if limit <= 0 {
		limit = search.CandidateLimit
	}
	sb.WriteString(" LIMIT ")
	sb.WriteString(b.arg(limit))

	return sb.String(), b.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring ILIKE match, escaping wildcards
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
