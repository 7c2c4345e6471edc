package product

// ServiceInterface is implemented by *Service and by test doubles in the
// cart and favorite packages.
type ServiceInterface interface {
	List(f Filter) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	ResetProducts(products []Product) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) List(f Filter) ([]Product, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// ResetProducts replaces all products with the given list (used by seeding).
func (s *Service) ResetProducts(products []Product) error {
	return s.repo.Reset(products)
}
