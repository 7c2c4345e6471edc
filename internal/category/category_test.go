package category

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Хранителни продукти", "хранителни-продукти"},
		{"Тестени/Паста", "тестени-паста"},
		{"  Milk & Dairy  ", "milk-dairy"},
		{"Напитки", "напитки"},
		{"a--b", "a-b"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSubcategoryID(t *testing.T) {
	got := SubcategoryID("хранителни-продукти", "Млечни продукти")
	want := "хранителни-продукти__млечни-продукти"
	if got != want {
		t.Fatalf("SubcategoryID = %q, want %q", got, want)
	}
}

func TestListAttachesSubcategories(t *testing.T) {
	repo := NewInMemoryRepository([]Category{
		{
			ID:   "food",
			Name: "Food",
			Subcategories: []Subcategory{
				{ID: "food__dairy", Name: "Dairy", CategoryID: "food"},
				{ID: "food__bread", Name: "Bread", CategoryID: "food"},
			},
		},
		{ID: "nonfood", Name: "Non-food"},
	})
	svc := NewService(repo)

	cats, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	var food Category
	for _, c := range cats {
		if c.ID == "food" {
			food = c
		}
	}
	if len(food.Subcategories) != 2 {
		t.Fatalf("expected 2 subcategories, got %+v", food.Subcategories)
	}

	subs, err := svc.ListSubcategories("food")
	if err != nil {
		t.Fatalf("ListSubcategories failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subcategories, got %+v", subs)
	}
}
