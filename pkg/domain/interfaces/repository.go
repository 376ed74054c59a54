package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Catalog() CatalogRepository
	Cases() CaseRepository
	Checklist() ChecklistRepository

	Close() error
}
