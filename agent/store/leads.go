package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/jirapat-a/careertalk/agent/contract"
)

// Contact is a visitor who left an email through record_user_details.
type Contact struct {
	bun.BaseModel `bun:"table:contacts"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Email     string    `bun:"email,notnull"`
	Name      string    `bun:"name,notnull"`
	Notes     string    `bun:"notes,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// UnknownQuestion is a visitor question the persona could not answer.
type UnknownQuestion struct {
	bun.BaseModel `bun:"table:unknown_questions"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Question  string    `bun:"question,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// LeadStore persists recorded visitor activity in Postgres.
type LeadStore struct {
	db *bun.DB
}

var _ contractx.LeadStore = (*LeadStore)(nil)

func NewLeadStore(dsn string) (*LeadStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &LeadStore{db: db}, nil
}

// Init creates the tables if they do not exist yet.
func (s *LeadStore) Init(ctx context.Context) error {
	models := []any{
		(*Contact)(nil),
		(*UnknownQuestion)(nil),
	}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *LeadStore) SaveContact(ctx context.Context, email, name, notes string) error {
	contact := &Contact{
		Email:     email,
		Name:      name,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.NewInsert().Model(contact).Exec(ctx)
	return err
}

func (s *LeadStore) SaveUnknownQuestion(ctx context.Context, question string) error {
	record := &UnknownQuestion{
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.NewInsert().Model(record).Exec(ctx)
	return err
}

func (s *LeadStore) Close() error {
	return s.db.Close()
}
