package repository

import (
	"fmt"

	"github.com/brainless/travlyng/internal/model"

	"github.com/jmoiron/sqlx"
)

// Таблицы каталога с одинаковой формой строки. Имя таблицы подставляется в
// запросы напрямую, поэтому репозиторий создается только для имен из этого
// списка и никогда — из пользовательского ввода.
var catalogTables = map[string]bool{
	"places":         true,
	"accommodations": true,
	"restaurants":    true,
}

// EntityRepository обеспечивает доступ к одной из таблиц каталога
// (places, accommodations, restaurants). Три таблицы намеренно одинаковы,
// поэтому репозиторий один и создается по экземпляру на таблицу.
type EntityRepository struct {
	db    *sqlx.DB
	table string
}

// NewEntityRepository создает репозиторий для указанной таблицы каталога.
func NewEntityRepository(db *sqlx.DB, table string) (*EntityRepository, error) {
	if !catalogTables[table] {
		return nil, fmt.Errorf("неизвестная таблица каталога: %s", table)
	}
	return &EntityRepository{db: db, table: table}, nil
}

// FindAll возвращает все записи таблицы.
func (r *EntityRepository) FindAll() ([]model.Entity, error) {
	entities := []model.Entity{}
	query := fmt.Sprintf("SELECT id, name, description, location FROM %s ORDER BY id", r.table)
	if err := r.db.Select(&entities, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка из %s: %w", r.table, err)
	}
	return entities, nil
}

// GetByID получает запись по идентификатору.
func (r *EntityRepository) GetByID(id int64) (*model.Entity, error) {
	var entity model.Entity
	query := fmt.Sprintf("SELECT id, name, description, location FROM %s WHERE id=$1", r.table)
	if err := r.db.Get(&entity, query, id); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create сохраняет новую запись и возвращает присвоенный идентификатор.
func (r *EntityRepository) Create(entity *model.Entity) (int64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, description, location) VALUES ($1, $2, $3) RETURNING id", r.table)
	var id int64
	err := r.db.QueryRow(query, entity.Name, entity.Description, entity.Location).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать запись в %s: %w", r.table, err)
	}
	return id, nil
}

// Update обновляет запись; если записи нет, возвращает sql.ErrNoRows.
func (r *EntityRepository) Update(id int64, entity *model.Entity) error {
	query := fmt.Sprintf("UPDATE %s SET name=$1, description=$2, location=$3 WHERE id=$4", r.table)
	res, err := r.db.Exec(query, entity.Name, entity.Description, entity.Location, id)
	if err != nil {
		return fmt.Errorf("не удалось обновить запись в %s: %w", r.table, err)
	}
	return requireAffected(res)
}

// Delete удаляет запись; если записи нет, возвращает sql.ErrNoRows.
func (r *EntityRepository) Delete(id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id=$1", r.table)
	res, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить запись из %s: %w", r.table, err)
	}
	return requireAffected(res)
}
