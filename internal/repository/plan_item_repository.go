package repository

import (
	"fmt"
	"strings"

	"github.com/brainless/travlyng/internal/model"

	"github.com/jmoiron/sqlx"
)

// Колонки, по которым разрешена сортировка и фильтрация пунктов маршрута.
// Имена колонок попадают в SQL, поэтому все, что пришло из запроса,
// проходит через этот список.
var planItemColumns = map[string]string{
	"id":          "id",
	"plan_id":     "plan_id",
	"entity_type": "entity_type",
	"entity_id":   "entity_id",
	"visit_date":  "visit_date",
}

// PlanItemRepository обеспечивает доступ к пунктам маршрута. Все операции
// записи привязаны к плану: пункт адресуется парой (plan_id, item_id).
type PlanItemRepository struct {
	db *sqlx.DB
}

// NewPlanItemRepository создает новый репозиторий пунктов маршрута.
func NewPlanItemRepository(db *sqlx.DB) *PlanItemRepository {
	return &PlanItemRepository{db: db}
}

// ListByPlan возвращает пункты указанного плана с учетом сортировки,
// диапазона и фильтров, а также общее число пунктов без учета диапазона.
func (r *PlanItemRepository) ListByPlan(planID int64, opts ListOptions) ([]model.PlanItem, int, error) {
	return r.list("plan_id=$1", []interface{}{planID}, opts, 2)
}

// ListAll возвращает пункты всех планов (сквозной просмотр). Каждая строка
// содержит plan_id — без него нельзя потом построить вложенный путь.
func (r *PlanItemRepository) ListAll(opts ListOptions) ([]model.PlanItem, int, error) {
	return r.list("", nil, opts, 1)
}

func (r *PlanItemRepository) list(cond string, args []interface{}, opts ListOptions, next int) ([]model.PlanItem, int, error) {
	conds := []string{}
	if cond != "" {
		conds = append(conds, cond)
	}
	for field, value := range opts.Filters {
		col, ok := planItemColumns[field]
		if !ok {
			continue // неизвестный фильтр молча пропускаем, как и оригинал
		}
		conds = append(conds, fmt.Sprintf("%s=$%d", col, next))
		args = append(args, value)
		next++
	}
	clause := ""
	if len(conds) > 0 {
		clause = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM plan_items"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете пунктов маршрута: %w", err)
	}

	query := "SELECT id, plan_id, entity_type, entity_id, visit_date, notes FROM plan_items" + clause
	col, ok := planItemColumns[opts.SortField]
	if !ok {
		col = "id"
	}
	order := "ASC"
	if strings.EqualFold(opts.SortOrder, "DESC") {
		order = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", col, order, order)
	if opts.Limited() {
		query += fmt.Sprintf(" OFFSET %d LIMIT %d", opts.Start, opts.End-opts.Start)
	}

	items := []model.PlanItem{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении пунктов маршрута: %w", err)
	}
	return items, total, nil
}

// GetByID получает пункт маршрута в пределах плана.
func (r *PlanItemRepository) GetByID(planID, itemID int64) (*model.PlanItem, error) {
	var item model.PlanItem
	err := r.db.Get(&item,
		"SELECT id, plan_id, entity_type, entity_id, visit_date, notes FROM plan_items WHERE id=$1 AND plan_id=$2",
		itemID, planID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create добавляет пункт в план и возвращает присвоенный идентификатор.
// Существование сущности, на которую указывает пункт, не проверяется.
func (r *PlanItemRepository) Create(planID int64, item *model.PlanItem) (int64, error) {
	query := `INSERT INTO plan_items (plan_id, entity_type, entity_id, visit_date, notes)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRow(query, planID, item.EntityType, item.EntityID, item.VisitDate, item.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось добавить пункт маршрута: %w", err)
	}
	return id, nil
}

// Update обновляет пункт в пределах плана; если пункта нет, возвращает
// sql.ErrNoRows.
func (r *PlanItemRepository) Update(planID, itemID int64, item *model.PlanItem) error {
	res, err := r.db.Exec(
		"UPDATE plan_items SET entity_type=$1, entity_id=$2, visit_date=$3, notes=$4 WHERE id=$5 AND plan_id=$6",
		item.EntityType, item.EntityID, item.VisitDate, item.Notes, itemID, planID)
	if err != nil {
		return fmt.Errorf("не удалось обновить пункт маршрута: %w", err)
	}
	return requireAffected(res)
}

// Delete удаляет пункт в пределах плана; если пункта нет, возвращает
// sql.ErrNoRows.
func (r *PlanItemRepository) Delete(planID, itemID int64) error {
	res, err := r.db.Exec("DELETE FROM plan_items WHERE id=$1 AND plan_id=$2", itemID, planID)
	if err != nil {
		return fmt.Errorf("не удалось удалить пункт маршрута: %w", err)
	}
	return requireAffected(res)
}
