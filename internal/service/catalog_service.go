package service

import (
	"fmt"

	"github.com/brainless/travlyng/internal/model"
	"github.com/brainless/travlyng/internal/repository"
)

// CatalogService содержит бизнес-логику, связанную с записями каталога.
// Три вида сущностей обслуживаются одним сервисом: формы у них одинаковые,
// различается только целевая таблица, выбираемая по тегу.
type CatalogService struct {
	repos map[model.EntityType]*repository.EntityRepository
}

// NewCatalogService создает новый сервис каталога.
func NewCatalogService(places, accommodations, restaurants *repository.EntityRepository) *CatalogService {
	return &CatalogService{repos: map[model.EntityType]*repository.EntityRepository{
		model.EntityTypePlace:         places,
		model.EntityTypeAccommodation: accommodations,
		model.EntityTypeRestaurant:    restaurants,
	}}
}

func (s *CatalogService) repo(t model.EntityType) (*repository.EntityRepository, error) {
	repo, ok := s.repos[t]
	if !ok {
		return nil, fmt.Errorf("неизвестный тип сущности: %s", t)
	}
	return repo, nil
}

// List возвращает все записи каталога указанного типа.
func (s *CatalogService) List(t model.EntityType) ([]model.Entity, error) {
	repo, err := s.repo(t)
	if err != nil {
		return nil, err
	}
	return repo.FindAll()
}

// Get возвращает запись каталога по типу и идентификатору.
func (s *CatalogService) Get(t model.EntityType, id int64) (*model.Entity, error) {
	repo, err := s.repo(t)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(id)
}

// Create сохраняет новую запись каталога и возвращает ее с присвоенным id.
func (s *CatalogService) Create(t model.EntityType, entity *model.Entity) (*model.Entity, error) {
	repo, err := s.repo(t)
	if err != nil {
		return nil, err
	}
	id, err := repo.Create(entity)
	if err != nil {
		return nil, err
	}
	entity.ID = id
	return entity, nil
}

// Update обновляет запись каталога.
func (s *CatalogService) Update(t model.EntityType, id int64, entity *model.Entity) (*model.Entity, error) {
	repo, err := s.repo(t)
	if err != nil {
		return nil, err
	}
	if err := repo.Update(id, entity); err != nil {
		return nil, err
	}
	entity.ID = id
	return entity, nil
}

// Delete удаляет запись каталога.
func (s *CatalogService) Delete(t model.EntityType, id int64) error {
	repo, err := s.repo(t)
	if err != nil {
		return err
	}
	return repo.Delete(id)
}

// ResolveRef разрешает слабую ссылку пункта маршрута в запись каталога.
// Это отдельный необязательный шаг чтения: ссылка может указывать на уже
// удаленную запись, тогда вернется ошибка sql.ErrNoRows, и вызывающая
// сторона сама решает, как показать недоступную сущность.
func (s *CatalogService) ResolveRef(ref model.EntityRef) (*model.Entity, error) {
	return s.Get(ref.Type, ref.ID)
}
