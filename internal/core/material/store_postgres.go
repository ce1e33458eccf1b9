package material

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/alloyforge/internal/platform/database/schema"
	"github.com/taibuivan/alloyforge/internal/platform/dberr"
)

// PostgresRepository stores materials in catalog.material.
//
// Base records (generated = false) are the persisted catalog; their insertion
// order is the catalog order. Derived records are upserted by the batch.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join([]string{
	schema.CatalogMaterial.ID, schema.CatalogMaterial.Label, schema.CatalogMaterial.Description,
	schema.CatalogMaterial.Slug, schema.CatalogMaterial.Stats, schema.CatalogMaterial.Stuff,
	schema.CatalogMaterial.Commonality, schema.CatalogMaterial.CostList, schema.CatalogMaterial.StackLimit,
	schema.CatalogMaterial.StuffCategories, schema.CatalogMaterial.ThingCategories,
	schema.CatalogMaterial.Graphic, schema.CatalogMaterial.Traits, schema.CatalogMaterial.Generated,
	schema.CatalogMaterial.ContentPack, schema.CatalogMaterial.BatchID, schema.CatalogMaterial.CreatedAt,
}, ", ")

// ListMaterials implements catalog.Source over the base records.
func (repository *PostgresRepository) ListMaterials(context context.Context, predicate func(*Material) bool) ([]*Material, error) {
	if predicate == nil {
		predicate = Any
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = FALSE ORDER BY %s ASC`,
		selectColumns, schema.CatalogMaterial.Table, schema.CatalogMaterial.Generated, schema.CatalogMaterial.Position,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_base_materials")
	}
	defer rows.Close()

	var materials []*Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("catalog row %q: %w", m.ID, err)
		}
		if predicate(m) {
			materials = append(materials, m)
		}
	}

	return materials, dberr.Wrap(rows.Err(), "list_base_materials")
}

func (repository *PostgresRepository) SearchMaterials(context context.Context, filter Filter, limit, offset int) ([]*Material, int, error) {
	where := ""
	args := []any{}

	if filter.Generated != nil {
		where = fmt.Sprintf(" WHERE %s = $1", schema.CatalogMaterial.Generated)
		args = append(args, *filter.Generated)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.CatalogMaterial.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_materials")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC, %s ASC LIMIT $%s OFFSET $%s`,
		selectColumns, schema.CatalogMaterial.Table, where,
		schema.CatalogMaterial.Generated, schema.CatalogMaterial.Position,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_materials")
	}
	defer rows.Close()

	var materials []*Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, err
		}
		materials = append(materials, m)
	}

	return materials, total, dberr.Wrap(rows.Err(), "list_materials")
}

func (repository *PostgresRepository) GetMaterial(context context.Context, id string) (*Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogMaterial.Table, schema.CatalogMaterial.ID,
	)
	return scanMaterial(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresRepository) GetMaterialBySlug(context context.Context, slug string) (*Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC LIMIT 1`,
		selectColumns, schema.CatalogMaterial.Table, schema.CatalogMaterial.Slug, schema.CatalogMaterial.Position,
	)
	return scanMaterial(repository.db.QueryRow(context, query, slug))
}

func (repository *PostgresRepository) MaterialIDs(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		schema.CatalogMaterial.ID, schema.CatalogMaterial.Table,
		schema.CatalogMaterial.Generated, schema.CatalogMaterial.Position,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_material_ids")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return ids, dberr.Wrap(err, "list_material_ids")
}

// UpsertMaterial inserts m or rewrites the row with the same id. The original
// catalog position is kept on update.
func (repository *PostgresRepository) UpsertMaterial(context context.Context, m *Material) error {
	t := schema.CatalogMaterial

	stuff, err := json.Marshal(m.Stuff)
	if err != nil {
		return fmt.Errorf("encode stuff of %q: %w", m.ID, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s
	`,
		t.Table, t.ID, t.Label, t.Description, t.Slug, t.Stats, t.Stuff, t.Commonality, t.CostList,
		t.StackLimit, t.StuffCategories, t.ThingCategories, t.Graphic, t.Traits, t.Generated,
		t.ContentPack, t.BatchID, t.CreatedAt, t.UpdatedAt,
		t.ID,
		t.Label, t.Label, t.Description, t.Description, t.Slug, t.Slug, t.Stats, t.Stats,
		t.Stuff, t.Stuff, t.Commonality, t.Commonality, t.CostList, t.CostList, t.StackLimit, t.StackLimit,
		t.StuffCategories, t.StuffCategories, t.ThingCategories, t.ThingCategories, t.Graphic, t.Graphic, t.Traits, t.Traits,
		t.Generated, t.Generated, t.ContentPack, t.ContentPack, t.BatchID, t.BatchID, t.UpdatedAt,
		t.CreatedAt,
	)

	err = repository.db.QueryRow(context, query,
		m.ID, m.Label, m.Description, m.Slug, orEmptyStats(m.Stats), nullJSON(stuff), m.Commonality,
		orEmpty(m.CostList), m.StackLimit, orEmpty(m.StuffCategories), orEmpty(m.ThingCategories),
		m.Graphic, m.Traits, m.Generated, m.ContentPack, m.BatchID,
	).Scan(&m.CreatedAt)

	return dberr.Wrap(err, "upsert_material")
}

func scanMaterial(row pgx.Row) (*Material, error) {
	m := &Material{}
	var stuff []byte

	err := row.Scan(
		&m.ID, &m.Label, &m.Description, &m.Slug, &m.Stats, &stuff, &m.Commonality, &m.CostList,
		&m.StackLimit, &m.StuffCategories, &m.ThingCategories, &m.Graphic, &m.Traits, &m.Generated,
		&m.ContentPack, &m.BatchID, &m.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_material")
	}

	if len(stuff) > 0 && string(stuff) != "null" {
		m.Stuff = &StuffProps{}
		if err := json.Unmarshal(stuff, m.Stuff); err != nil {
			return nil, dberr.Wrap(err, "decode_material_stuff")
		}
	}
	return m, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func orEmptyStats(s StatSet) StatSet {
	if s == nil {
		return StatSet{}
	}
	return s
}

// nullJSON maps an encoded nil pointer to SQL NULL.
func nullJSON(raw []byte) any {
	if string(raw) == "null" {
		return nil
	}
	return string(raw)
}
