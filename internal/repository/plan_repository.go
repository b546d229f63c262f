package repository

import (
	"fmt"

	"github.com/brainless/travlyng/internal/model"

	"github.com/jmoiron/sqlx"
)

// PlanRepository обеспечивает доступ к данным планов путешествий.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository создает новый репозиторий планов.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// FindAll возвращает все планы без пунктов маршрута.
func (r *PlanRepository) FindAll() ([]model.TravelPlan, error) {
	plans := []model.TravelPlan{}
	err := r.db.Select(&plans, "SELECT id, name, start_date, end_date FROM travel_plans ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка планов: %w", err)
	}
	return plans, nil
}

// GetByID получает план по идентификатору (без пунктов).
func (r *PlanRepository) GetByID(id int64) (*model.TravelPlan, error) {
	var plan model.TravelPlan
	err := r.db.Get(&plan, "SELECT id, name, start_date, end_date FROM travel_plans WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create сохраняет новый план и возвращает присвоенный идентификатор.
func (r *PlanRepository) Create(plan *model.TravelPlan) (int64, error) {
	query := `INSERT INTO travel_plans (name, start_date, end_date) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	err := r.db.QueryRow(query, plan.Name, plan.StartDate, plan.EndDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать план: %w", err)
	}
	return id, nil
}

// Update обновляет план; если плана нет, возвращает sql.ErrNoRows.
func (r *PlanRepository) Update(id int64, plan *model.TravelPlan) error {
	res, err := r.db.Exec("UPDATE travel_plans SET name=$1, start_date=$2, end_date=$3 WHERE id=$4",
		plan.Name, plan.StartDate, plan.EndDate, id)
	if err != nil {
		return fmt.Errorf("не удалось обновить план: %w", err)
	}
	return requireAffected(res)
}

// Delete удаляет план. Пункты маршрута удаляются каскадно на стороне базы
// (внешний ключ plan_items.plan_id), репозиторий это не координирует.
func (r *PlanRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM travel_plans WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить план: %w", err)
	}
	return requireAffected(res)
}
