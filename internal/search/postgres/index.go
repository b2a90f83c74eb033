// Package postgres implements the search-index client over PostgreSQL.
// Collections and works are indexed as flat documents with per-document
// access grants; visibility filtering happens inside the queries so that
// totals always reflect the filtered count before pagination.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repono/internal/domain"
	"repono/internal/port"
)

const collectionColumns = `id, account_id, title, visibility, related_url, resource_type,
	date_created, description, date_published, keywords, license, rights_statement,
	language, publisher, thumbnail_path, volumes`

const workColumns = `id, account_id, model_name, title, visibility, related_url, resource_type,
	date_created, description, date_published, keywords, license, rights_statement,
	language, publisher, thumbnail_path, volumes`

type index struct {
	db *sqlx.DB
}

// NewIndex creates a PostgreSQL-backed SearchIndex.
func NewIndex(db *sqlx.DB) port.SearchIndex {
	return &index{db: db}
}

type collectionRow struct {
	domain.CollectionDoc
	KeywordsCSV sql.NullString `db:"keywords"`
}

type workRow struct {
	domain.WorkDoc
	KeywordsCSV sql.NullString `db:"keywords"`
}

func splitCSV(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	parts := strings.Split(s.String, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// visibilityClause renders the filter as SQL over the aliased document table.
// Admin requesters bypass filtering entirely.
func visibilityClause(alias string, f domain.VisibilityFilter, args *[]interface{}) string {
	if f.Admin {
		return "TRUE"
	}

	clauses := []string{fmt.Sprintf("%s.visibility = 'open'", alias)}
	if f.Registered {
		clauses = append(clauses, fmt.Sprintf("%s.visibility = 'authenticated'", alias))
	}
	if f.Email != "" {
		*args = append(*args, f.Email)
		clauses = append(clauses, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM access_grants g WHERE g.doc_id = %s.id AND g.agent_type = 'user' AND g.agent = ?)`, alias))
	}
	if len(f.Groups) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.Groups)), ",")
		for _, grp := range f.Groups {
			*args = append(*args, grp)
		}
		clauses = append(clauses, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM access_grants g WHERE g.doc_id = %s.id AND g.agent_type = 'group' AND g.agent IN (%s))`,
			alias, placeholders))
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

func (i *index) CollectionCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	var total int
	err := i.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM collections WHERE account_id = $1", accountID)
	if err != nil {
		return 0, fmt.Errorf("index.CollectionCount: %w", err)
	}
	return total, nil
}

func (i *index) SearchCollections(ctx context.Context, q port.CollectionQuery) ([]domain.CollectionDoc, int, error) {
	args := []interface{}{q.AccountID}
	where := "c.account_id = ? AND " + visibilityClause("c", q.Filter, &args)

	var total int
	countQuery := i.db.Rebind("SELECT COUNT(*) FROM collections c WHERE " + where)
	if err := i.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("index.SearchCollections count: %w", err)
	}

	pageArgs := append(args, q.Page.PerPage, q.Page.Offset())
	listQuery := i.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM collections c WHERE %s ORDER BY c.created_at, c.id LIMIT ? OFFSET ?`,
		prefixColumns("c", collectionColumns), where))

	var rows []collectionRow
	if err := i.db.SelectContext(ctx, &rows, listQuery, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("index.SearchCollections: %w", err)
	}

	docs := make([]domain.CollectionDoc, 0, len(rows))
	for _, row := range rows {
		doc := row.CollectionDoc
		doc.Keywords = splitCSV(row.KeywordsCSV)
		if err := i.loadGrants(ctx, doc.ID, &doc.ReadUsers, &doc.ReadGroups); err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	return docs, total, nil
}

func (i *index) GetCollection(ctx context.Context, q port.SingleItemQuery) (*domain.CollectionDoc, error) {
	var row collectionRow
	err := i.db.GetContext(ctx, &row, fmt.Sprintf(
		"SELECT %s FROM collections WHERE account_id = $1 AND id = $2", collectionColumns),
		q.AccountID, q.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("index.GetCollection: %w", err)
	}

	doc := row.CollectionDoc
	doc.Keywords = splitCSV(row.KeywordsCSV)
	if err := i.loadGrants(ctx, doc.ID, &doc.ReadUsers, &doc.ReadGroups); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (i *index) SearchMemberWorks(ctx context.Context, q port.MemberWorkQuery) ([]domain.WorkDoc, int, error) {
	args := []interface{}{q.AccountID, q.CollectionID}
	where := `w.account_id = ?
		AND EXISTS (SELECT 1 FROM collection_members cm
			WHERE cm.work_id = w.id AND cm.collection_id = ?)
		AND ` + visibilityClause("w", q.Filter, &args)

	var total int
	countQuery := i.db.Rebind("SELECT COUNT(*) FROM works w WHERE " + where)
	if err := i.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("index.SearchMemberWorks count: %w", err)
	}

	pageArgs := append(args, q.CollectionID, q.Page.PerPage, q.Page.Offset())
	listQuery := i.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM works w WHERE %s
		 ORDER BY (SELECT cm.position FROM collection_members cm
			WHERE cm.work_id = w.id AND cm.collection_id = ?)
		 LIMIT ? OFFSET ?`,
		prefixColumns("w", workColumns), where))

	var rows []workRow
	if err := i.db.SelectContext(ctx, &rows, listQuery, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("index.SearchMemberWorks: %w", err)
	}
	return i.workDocs(ctx, rows, total)
}

func (i *index) WorkCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	var total int
	err := i.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM works WHERE account_id = $1", accountID)
	if err != nil {
		return 0, fmt.Errorf("index.WorkCount: %w", err)
	}
	return total, nil
}

func (i *index) SearchWorks(ctx context.Context, q port.WorkQuery) ([]domain.WorkDoc, int, error) {
	args := []interface{}{q.AccountID}
	where := "w.account_id = ? AND " + visibilityClause("w", q.Filter, &args)

	var total int
	countQuery := i.db.Rebind("SELECT COUNT(*) FROM works w WHERE " + where)
	if err := i.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("index.SearchWorks count: %w", err)
	}

	pageArgs := append(args, q.Page.PerPage, q.Page.Offset())
	listQuery := i.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM works w WHERE %s ORDER BY w.created_at, w.id LIMIT ? OFFSET ?`,
		prefixColumns("w", workColumns), where))

	var rows []workRow
	if err := i.db.SelectContext(ctx, &rows, listQuery, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("index.SearchWorks: %w", err)
	}
	return i.workDocs(ctx, rows, total)
}

func (i *index) GetWork(ctx context.Context, q port.SingleItemQuery) (*domain.WorkDoc, error) {
	var row workRow
	err := i.db.GetContext(ctx, &row, fmt.Sprintf(
		"SELECT %s FROM works WHERE account_id = $1 AND id = $2", workColumns),
		q.AccountID, q.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("index.GetWork: %w", err)
	}

	doc := row.WorkDoc
	doc.Keywords = splitCSV(row.KeywordsCSV)
	if err := i.loadGrants(ctx, doc.ID, &doc.ReadUsers, &doc.ReadGroups); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (i *index) workDocs(ctx context.Context, rows []workRow, total int) ([]domain.WorkDoc, int, error) {
	docs := make([]domain.WorkDoc, 0, len(rows))
	for _, row := range rows {
		doc := row.WorkDoc
		doc.Keywords = splitCSV(row.KeywordsCSV)
		if err := i.loadGrants(ctx, doc.ID, &doc.ReadUsers, &doc.ReadGroups); err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	return docs, total, nil
}

func (i *index) loadGrants(ctx context.Context, docID string, readUsers, readGroups *[]string) error {
	rows, err := i.db.QueryxContext(ctx,
		"SELECT agent_type, agent FROM access_grants WHERE doc_id = $1", docID)
	if err != nil {
		return fmt.Errorf("index.loadGrants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var agentType, agent string
		if err := rows.Scan(&agentType, &agent); err != nil {
			return fmt.Errorf("index.loadGrants scan: %w", err)
		}
		switch agentType {
		case "user":
			*readUsers = append(*readUsers, agent)
		case "group":
			*readGroups = append(*readGroups, agent)
		}
	}
	return rows.Err()
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for idx, p := range parts {
		parts[idx] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
