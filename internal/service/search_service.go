package service

import (
	"context"

	"github.com/brainless/travlyng/internal/cache"
	"github.com/brainless/travlyng/internal/model"
	"github.com/brainless/travlyng/internal/repository"
)

// SearchService выполняет сквозной поиск по каталогу с необязательным
// кэшированием результатов.
type SearchService struct {
	searchRepo *repository.SearchRepository
	cache      *cache.SearchCache
}

// NewSearchService создает новый сервис поиска. Кэш может быть nil.
func NewSearchService(searchRepo *repository.SearchRepository, cache *cache.SearchCache) *SearchService {
	return &SearchService{searchRepo: searchRepo, cache: cache}
}

// Search ищет записи каталога по подстроке в имени или описании.
func (s *SearchService) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	if results, ok := s.cache.Get(ctx, q); ok {
		return results, nil
	}
	results, err := s.searchRepo.Find(q)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, q, results)
	return results, nil
}
