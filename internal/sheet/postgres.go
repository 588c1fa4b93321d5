package sheet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"scouthook/internal/db"
)

// Postgres stores sheets in three tables: sheets (identity + frozen header
// count), sheet_rows (ordered jsonb cell arrays) and sheet_layout (row/column
// pixel sizes). See internal/migrations.
type Postgres struct {
	DB *sqlx.DB
}

func NewPostgres(dbx *sqlx.DB) *Postgres {
	return &Postgres{DB: dbx}
}

func (p *Postgres) EnsureSheet(ctx context.Context, name string, headers []string) (bool, error) {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	b, err := json.Marshal(cells)
	if err != nil {
		return false, err
	}

	created := false
	err = db.WithTx(ctx, p.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `insert into sheets(name) values($1) on conflict (name) do nothing`, name); err != nil {
			return err
		}
		var rows int64
		if err := tx.GetContext(ctx, &rows, `select count(1) from sheet_rows where sheet_name=$1`, name); err != nil {
			return err
		}
		if rows > 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `insert into sheet_rows(id, sheet_name, row_num, cells) values($1,$2,1,$3)`, uuid.NewString(), name, b); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `update sheets set frozen_rows=1 where name=$1`, name); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (p *Postgres) AppendRow(ctx context.Context, name string, cells []any) (int64, error) {
	b, err := json.Marshal(cells)
	if err != nil {
		return 0, err
	}
	var rowNum int64
	err = db.WithTx(ctx, p.DB, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &rowNum,
			`insert into sheet_rows(id, sheet_name, row_num, cells)
			 select $1, $2, coalesce(max(row_num), 0)+1, $3 from sheet_rows where sheet_name=$2
			 returning row_num`,
			uuid.NewString(), name, b)
	})
	if err != nil {
		return 0, err
	}
	return rowNum, nil
}

func (p *Postgres) SetCell(ctx context.Context, name string, row int64, col int, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("{%d}", col-1)
	res, err := p.DB.ExecContext(ctx,
		`update sheet_rows set cells = jsonb_set(cells, $1, $2::jsonb) where sheet_name=$3 and row_num=$4`,
		path, b, name, row)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sheet %q has no row %d", name, row)
	}
	return nil
}

func (p *Postgres) SetRowHeight(ctx context.Context, name string, row int64, pixels int) error {
	return p.setLayout(ctx, name, "row", row, pixels)
}

func (p *Postgres) SetColumnWidth(ctx context.Context, name string, col int, pixels int) error {
	return p.setLayout(ctx, name, "column", int64(col), pixels)
}

func (p *Postgres) setLayout(ctx context.Context, name, dimension string, pos int64, pixels int) error {
	_, err := p.DB.ExecContext(ctx,
		`insert into sheet_layout(sheet_name, dimension, position, pixels) values($1,$2,$3,$4)
		 on conflict (sheet_name, dimension, position) do update set pixels=excluded.pixels`,
		name, dimension, pos, pixels)
	return err
}

func (p *Postgres) Stats(ctx context.Context, name string) (Stats, error) {
	st := Stats{Name: name}
	var exists bool
	if err := p.DB.GetContext(ctx, &exists, `select exists(select 1 from sheets where name=$1)`, name); err != nil {
		return st, err
	}
	st.Exists = exists
	if !exists {
		return st, nil
	}
	if err := p.DB.GetContext(ctx, &st.RowCount, `select count(1) from sheet_rows where sheet_name=$1`, name); err != nil {
		return st, err
	}
	return st, nil
}

func (p *Postgres) ClearData(ctx context.Context, name string) (int64, error) {
	res, err := p.DB.ExecContext(ctx, `delete from sheet_rows where sheet_name=$1 and row_num > 1`, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
