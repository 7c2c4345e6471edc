package category

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) ListSubcategories(categoryID string) ([]Subcategory, error) {
	return s.repo.ListSubcategories(categoryID)
}

// Reset replaces the category tree (used by the seed command).
func (s *Service) Reset(categories []Category) error {
	return s.repo.Reset(categories)
}
