package model

// TravelPlan представляет план путешествия с датами начала и окончания.
// Items заполняется только при получении одного плана целиком.
type TravelPlan struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	StartDate *string    `db:"start_date" json:"start_date"`
	EndDate   *string    `db:"end_date" json:"end_date"`
	Items     []PlanItem `db:"-" json:"items,omitempty"`
}

// PlanItem представляет пункт маршрута: связь плана с произвольной сущностью
// каталога на определенную дату. Пара (EntityType, EntityID) — слабая ссылка:
// существование сущности при записи не проверяется, удаление сущности не
// трогает пункт. PlanID присутствует в каждой сериализованной записи, иначе
// адаптер не сможет позже построить вложенный путь для изменения и удаления.
type PlanItem struct {
	ID         int64   `db:"id" json:"id"`
	PlanID     int64   `db:"plan_id" json:"plan_id"`
	EntityType string  `db:"entity_type" json:"entity_type"`
	EntityID   int64   `db:"entity_id" json:"entity_id"`
	VisitDate  *string `db:"visit_date" json:"visit_date"`
	Notes      *string `db:"notes" json:"notes"`
}

// Ref возвращает типизированную ссылку пункта на сущность каталога.
func (i PlanItem) Ref() EntityRef {
	return EntityRef{Type: EntityType(i.EntityType), ID: i.EntityID}
}
