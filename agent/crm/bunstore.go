package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

type customerRow struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID       string             `bun:"id,pk"`
	Name     string             `bun:"name"`
	Email    string             `bun:"email"`
	Phone    string             `bun:"phone"`
	Address  string             `bun:"address"`
	Policies []contractx.Policy `bun:"policies,type:jsonb"`
	History  string             `bun:"history"`
}

type leadRow struct {
	bun.BaseModel `bun:"table:leads,alias:l"`

	ID       string `bun:"id,pk"`
	Name     string `bun:"name"`
	Email    string `bun:"email"`
	Phone    string `bun:"phone"`
	Interest string `bun:"interest"`
	Area     string `bun:"area"`
	Score    int    `bun:"score"`
	Status   string `bun:"status"`
}

// OpenPostgres connects a bun DB over the Postgres wire protocol.
func OpenPostgres(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// PostgresDirectory serves both directory interfaces from Postgres tables.
type PostgresDirectory struct {
	db *bun.DB
}

func NewPostgresDirectory(db *bun.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) FindCustomer(ctx context.Context, identifier string) (contractx.CustomerProfile, error) {
	q := strings.ToLower(strings.TrimSpace(identifier))
	if q == "" {
		return contractx.CustomerProfile{}, nil
	}

	var row customerRow
	err := d.db.NewSelect().
		Model(&row).
		Where("lower(c.id) = ?", q).
		WhereOr("lower(c.email) = ?", q).
		WhereOr("lower(c.name) = ?", q).
		WhereOr("EXISTS (SELECT 1 FROM jsonb_array_elements(c.policies) p WHERE lower(p->>'policy_id') = ?)", q).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.CustomerProfile{}, nil
	}
	if err != nil {
		return contractx.CustomerProfile{}, fmt.Errorf("query customer %q: %w", identifier, err)
	}
	return contractx.CustomerProfile{
		ID:       row.ID,
		Name:     row.Name,
		Email:    row.Email,
		Phone:    row.Phone,
		Address:  row.Address,
		Policies: row.Policies,
		History:  row.History,
	}, nil
}

func (d *PostgresDirectory) SearchLeads(ctx context.Context, criteria contractx.LeadCriteria) ([]contractx.Lead, error) {
	query := d.db.NewSelect().Model((*leadRow)(nil)).Order("l.id ASC")
	if criteria.ScoreMin != nil {
		query = query.Where("l.score >= ?", *criteria.ScoreMin)
	}
	if criteria.Interest != "" {
		query = query.Where("l.interest ILIKE ?", "%"+criteria.Interest+"%")
	}
	if criteria.Area != "" {
		query = query.Where("lower(l.area) = ?", strings.ToLower(criteria.Area))
	}
	if criteria.Status != "" {
		query = query.Where("lower(l.status) = ?", strings.ToLower(criteria.Status))
	}
	if criteria.Name != "" {
		query = query.Where("l.name ILIKE ?", "%"+criteria.Name+"%")
	}

	var rows []leadRow
	if err := query.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}

	leads := make([]contractx.Lead, 0, len(rows))
	for _, r := range rows {
		leads = append(leads, contractx.Lead{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			Phone:    r.Phone,
			Interest: r.Interest,
			Area:     r.Area,
			Score:    r.Score,
			Status:   contractx.LeadStatus(r.Status),
		})
	}
	return leads, nil
}
