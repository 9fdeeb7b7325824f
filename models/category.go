package models

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DefaultCategories seeds a fresh installation.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Technology", Description: "Tech conferences and workshops"},
		{Name: "Music", Description: "Concerts and music festivals"},
		{Name: "Business", Description: "Business conferences and networking"},
		{Name: "Sports", Description: "Sports events and tournaments"},
		{Name: "Education", Description: "Educational workshops and seminars"},
		{Name: "Arts and Culture", Description: "Art exhibitions and cultural events"},
		{Name: "Food and Drink", Description: "Food festivals and culinary events"},
		{Name: "Health and Wellness", Description: "Health, fitness and wellness events"},
	}
}
