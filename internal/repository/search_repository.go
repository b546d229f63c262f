package repository

import (
	"fmt"
	"strings"

	"github.com/brainless/travlyng/internal/model"

	"github.com/jmoiron/sqlx"
)

// SearchRepository выполняет сквозной поиск по трем таблицам каталога.
type SearchRepository struct {
	db *sqlx.DB
}

// NewSearchRepository создает новый репозиторий поиска.
func NewSearchRepository(db *sqlx.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Find ищет записи, у которых имя или описание содержат подстроку q,
// во всех трех таблицах каталога и возвращает их с тегом таблицы.
func (r *SearchRepository) Find(q string) ([]model.SearchResult, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	results := []model.SearchResult{}
	for _, t := range []model.EntityType{model.EntityTypePlace, model.EntityTypeAccommodation, model.EntityTypeRestaurant} {
		query := fmt.Sprintf(
			`SELECT id, name, '%s' AS entity_type, description, location FROM %s
			 WHERE LOWER(name) LIKE $1 OR LOWER(COALESCE(description, '')) LIKE $1 ORDER BY id`,
			t, t.Table())
		part := []model.SearchResult{}
		if err := r.db.Select(&part, query, pattern); err != nil {
			return nil, fmt.Errorf("ошибка при поиске в %s: %w", t.Table(), err)
		}
		results = append(results, part...)
	}
	return results, nil
}
