package model

// Entity представляет запись каталога путешествий: место, жилье или ресторан.
// Все три таблицы имеют одинаковую форму, но хранятся раздельно и не
// опрашиваются полиморфно как один тип строки.
type Entity struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Location    *string `db:"location" json:"location"`
}

// SearchResult представляет результат сквозного поиска по всем трем таблицам
// сущностей: запись каталога, помеченная тегом своей таблицы.
type SearchResult struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	EntityType  string  `db:"entity_type" json:"entity_type"`
	Description *string `db:"description" json:"description"`
	Location    *string `db:"location" json:"location"`
}
