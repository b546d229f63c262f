package service

import (
	"fmt"

	"github.com/brainless/travlyng/internal/model"
	"github.com/brainless/travlyng/internal/repository"
)

// PlanItemService содержит бизнес-логику, связанную с пунктами маршрута.
// Сервис проверяет только принадлежность тега entity_type к известным
// таблицам; существование самой сущности при записи не проверяется —
// висячие ссылки приняты как осознанный компромисс модели.
type PlanItemService struct {
	itemRepo *repository.PlanItemRepository
}

// NewPlanItemService создает новый сервис пунктов маршрута.
func NewPlanItemService(itemRepo *repository.PlanItemRepository) *PlanItemService {
	return &PlanItemService{itemRepo: itemRepo}
}

func validateTag(item *model.PlanItem) error {
	if !model.EntityType(item.EntityType).Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidEntityType, item.EntityType)
	}
	return nil
}

// ListByPlan возвращает пункты плана и их общее число.
func (s *PlanItemService) ListByPlan(planID int64, opts repository.ListOptions) ([]model.PlanItem, int, error) {
	return s.itemRepo.ListByPlan(planID, opts)
}

// ListAll возвращает пункты всех планов для сквозного просмотра.
func (s *PlanItemService) ListAll(opts repository.ListOptions) ([]model.PlanItem, int, error) {
	return s.itemRepo.ListAll(opts)
}

// Get возвращает пункт маршрута в пределах плана.
func (s *PlanItemService) Get(planID, itemID int64) (*model.PlanItem, error) {
	return s.itemRepo.GetByID(planID, itemID)
}

// Create добавляет пункт в план и возвращает его с присвоенным id.
func (s *PlanItemService) Create(planID int64, item *model.PlanItem) (*model.PlanItem, error) {
	if err := validateTag(item); err != nil {
		return nil, err
	}
	id, err := s.itemRepo.Create(planID, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	item.PlanID = planID
	return item, nil
}

// Update обновляет пункт в пределах плана.
func (s *PlanItemService) Update(planID, itemID int64, item *model.PlanItem) (*model.PlanItem, error) {
	if err := validateTag(item); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(planID, itemID, item); err != nil {
		return nil, err
	}
	item.ID = itemID
	item.PlanID = planID
	return item, nil
}

// Delete удаляет пункт в пределах плана.
func (s *PlanItemService) Delete(planID, itemID int64) error {
	return s.itemRepo.Delete(planID, itemID)
}
