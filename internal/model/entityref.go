package model

// EntityType — тег таблицы сущностей, на которую указывает пункт маршрута.
type EntityType string

const (
	EntityTypePlace         EntityType = "place"
	EntityTypeAccommodation EntityType = "accommodation"
	EntityTypeRestaurant    EntityType = "restaurant"
)

// Valid сообщает, относится ли тег к одной из известных таблиц.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypePlace, EntityTypeAccommodation, EntityTypeRestaurant:
		return true
	}
	return false
}

// Table возвращает имя таблицы, соответствующей тегу, либо пустую строку.
func (t EntityType) Table() string {
	switch t {
	case EntityTypePlace:
		return "places"
	case EntityTypeAccommodation:
		return "accommodations"
	case EntityTypeRestaurant:
		return "restaurants"
	}
	return ""
}

// EntityRef — помеченная ссылка на строку одной из трех таблиц сущностей.
// Хранится как пара (тег, id); разрешение в конкретную сущность — отдельный
// необязательный шаг чтения (CatalogService.ResolveRef), никогда не
// выполняемый при записи.
type EntityRef struct {
	Type EntityType
	ID   int64
}

// PlaceRef создает ссылку на место.
func PlaceRef(id int64) EntityRef {
	return EntityRef{Type: EntityTypePlace, ID: id}
}

// AccommodationRef создает ссылку на жилье.
func AccommodationRef(id int64) EntityRef {
	return EntityRef{Type: EntityTypeAccommodation, ID: id}
}

// RestaurantRef создает ссылку на ресторан.
func RestaurantRef(id int64) EntityRef {
	return EntityRef{Type: EntityTypeRestaurant, ID: id}
}
