package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/alloyforge/internal/platform/database/schema"
	"github.com/taibuivan/alloyforge/internal/platform/dberr"
)

// PostgresRepository stores recipes in catalog.recipe.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join([]string{
	schema.CatalogRecipe.ID, schema.CatalogRecipe.Label, schema.CatalogRecipe.Description,
	schema.CatalogRecipe.Ingredients, schema.CatalogRecipe.Products, schema.CatalogRecipe.Producers,
	schema.CatalogRecipe.UsesIngredientColor, schema.CatalogRecipe.Generated,
	schema.CatalogRecipe.ContentPack, schema.CatalogRecipe.BatchID, schema.CatalogRecipe.CreatedAt,
}, ", ")

func (repository *PostgresRepository) SearchRecipes(context context.Context, limit, offset int) ([]*Recipe, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogRecipe.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_recipes")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC LIMIT $1 OFFSET $2`,
		selectColumns, schema.CatalogRecipe.Table, schema.CatalogRecipe.CreatedAt, schema.CatalogRecipe.ID,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, err
		}
		recipes = append(recipes, r)
	}

	return recipes, total, dberr.Wrap(rows.Err(), "list_recipes")
}

func (repository *PostgresRepository) GetRecipe(context context.Context, id string) (*Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogRecipe.Table, schema.CatalogRecipe.ID,
	)
	return scanRecipe(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresRepository) RecipeIDs(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		schema.CatalogRecipe.ID, schema.CatalogRecipe.Table, schema.CatalogRecipe.CreatedAt, schema.CatalogRecipe.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_recipe_ids")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return ids, dberr.Wrap(err, "list_recipe_ids")
}

// UpsertRecipe inserts r or rewrites the row with the same id.
func (repository *PostgresRepository) UpsertRecipe(context context.Context, r *Recipe) error {
	t := schema.CatalogRecipe

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = NOW()
		RETURNING %s
	`,
		t.Table, t.ID, t.Label, t.Description, t.Ingredients, t.Products, t.Producers,
		t.UsesIngredientColor, t.Generated, t.ContentPack, t.BatchID, t.CreatedAt, t.UpdatedAt,
		t.ID,
		t.Label, t.Label, t.Description, t.Description, t.Ingredients, t.Ingredients, t.Products, t.Products,
		t.Producers, t.Producers, t.UsesIngredientColor, t.UsesIngredientColor, t.Generated, t.Generated,
		t.ContentPack, t.ContentPack, t.BatchID, t.BatchID, t.UpdatedAt,
		t.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		r.ID, r.Label, r.Description, orEmpty(r.Ingredients), orEmpty(r.Products), orEmpty(r.Producers),
		r.UsesIngredientColor, r.Generated, r.ContentPack, r.BatchID,
	).Scan(&r.CreatedAt)

	return dberr.Wrap(err, "upsert_recipe")
}

func scanRecipe(row pgx.Row) (*Recipe, error) {
	r := &Recipe{}
	err := row.Scan(
		&r.ID, &r.Label, &r.Description, &r.Ingredients, &r.Products, &r.Producers,
		&r.UsesIngredientColor, &r.Generated, &r.ContentPack, &r.BatchID, &r.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_recipe")
	}
	return r, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
