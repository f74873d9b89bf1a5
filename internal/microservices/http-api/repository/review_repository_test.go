package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestOrderColumns(t *testing.T) {
	id := clause.OrderByColumn{Column: clause.Column{Table: "reviews", Name: "id"}}

	tests := []struct {
		name   string
		fields []OrderField
		want   []clause.OrderByColumn
	}{
		{
			name: "default is id",
			want: []clause.OrderByColumn{id},
		},
		{
			name:   "created descending then id",
			fields: []OrderField{{Name: "created", Desc: true}},
			want: []clause.OrderByColumn{
				{Column: clause.Column{Table: "reviews", Name: "created_at"}, Desc: true},
				id,
			},
		},
		{
			name:   "unknown fields are dropped",
			fields: []OrderField{{Name: "password"}, {Name: "rating"}},
			want: []clause.OrderByColumn{
				{Column: clause.Column{Table: "reviews", Name: "rating"}},
				id,
			},
		},
		{
			name:   "explicit id is not repeated",
			fields: []OrderField{{Name: "id", Desc: true}},
			want: []clause.OrderByColumn{
				{Column: clause.Column{Table: "reviews", Name: "id"}, Desc: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderColumns(tt.fields))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestTranslate(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_watchlist_user"}

	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", pgDup)), ErrDuplicateKey)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicateKey)
	assert.NoError(t, translate(nil))

	other := errors.New("connection refused")
	assert.Equal(t, other, translate(other))
	assert.NotErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), ErrDuplicateKey)
}
