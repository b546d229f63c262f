package service

import (
	"github.com/brainless/travlyng/internal/model"
	"github.com/brainless/travlyng/internal/repository"
)

// PlanService содержит бизнес-логику, связанную с планами путешествий.
type PlanService struct {
	planRepo *repository.PlanRepository
	itemRepo *repository.PlanItemRepository
}

// NewPlanService создает новый сервис планов.
func NewPlanService(planRepo *repository.PlanRepository, itemRepo *repository.PlanItemRepository) *PlanService {
	return &PlanService{planRepo: planRepo, itemRepo: itemRepo}
}

// List возвращает все планы без пунктов маршрута.
func (s *PlanService) List() ([]model.TravelPlan, error) {
	return s.planRepo.FindAll()
}

// Get возвращает план вместе со всеми его пунктами.
func (s *PlanService) Get(id int64) (*model.TravelPlan, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	items, _, err := s.itemRepo.ListByPlan(id, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	plan.Items = items
	return plan, nil
}

// Create сохраняет новый план и возвращает его с присвоенным id.
func (s *PlanService) Create(plan *model.TravelPlan) (*model.TravelPlan, error) {
	id, err := s.planRepo.Create(plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// Update обновляет план.
func (s *PlanService) Update(id int64, plan *model.TravelPlan) (*model.TravelPlan, error) {
	if err := s.planRepo.Update(id, plan); err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// Delete удаляет план; пункты маршрута удаляет каскад в базе.
func (s *PlanService) Delete(id int64) error {
	return s.planRepo.Delete(id)
}
