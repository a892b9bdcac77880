package catalog

import (
	"github.com/yeremiapane/koko-king/models"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Categories = []Category{
	{ID: "specials", Name: "King Specials"},
	{ID: "wraps", Name: "Wraps & Quesadillas"},
	{ID: "sandwiches", Name: "Sandwiches"},
	{ID: "salads", Name: "Salads"},
	{ID: "sides", Name: "Sides"},
	{ID: "bakery", Name: "Bakery"},
	{ID: "porridge", Name: "Porridge & Hot Beverages"},
	{ID: "drinks", Name: "Drinks"},
}

const (
	eastLegon = "branch-east-legon"
	osu       = "branch-osu"
	spintex   = "branch-spintex"
)

func item(id, name, description string, price float64, category, branchID string) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       models.Cedis(price),
		Category:    category,
		Image:       "/images/categories/" + category + ".jpg",
		BranchID:    branchID,
		Provenance:  models.ProvenanceBuiltIn,
	}
}

var builtIn = []models.MenuItem{
	item("ks1", "Kings Favourite", "Our signature special", 75, "specials", eastLegon),
	item("ks2", "Kings Combo", "Sandwich + Beverage/Porridge", 65, "specials", eastLegon),
	item("ks3", "Special Occasion Package", "Perfect for celebrations", 150, "specials", eastLegon),
	item("ks4", "Fries + Drumsticks + Ketchup", "Crispy combo", 105, "specials", eastLegon),
	item("ks5", "Salad + Smoothie Combo", "Healthy and refreshing", 97, "specials", eastLegon),
	item("wq1", "Chicken Shawarma", "Tender chicken wrap", 75, "wraps", eastLegon),
	item("wq2", "Beef Shawarma", "Savory beef wrap", 90, "wraps", eastLegon),
	item("wq3", "Chicken Wrap", "Fresh chicken wrap", 75, "wraps", osu),
	item("wq4", "Tuna Wrap", "Light tuna wrap", 82, "wraps", osu),
	item("wq5", "Cheesy Chicken Quesadilla", "Melted cheese and chicken", 105, "wraps", osu),
	item("wq6", "Cheesy Beef Quesadilla", "Beef and cheese delight", 115, "wraps", spintex),
	item("wq7", "Egg & Cheese Quesadilla", "Simple and tasty", 68, "wraps", spintex),
	item("wq8", "Smoked Ham, Egg & Cheese Quesadilla", "Premium ingredients", 129, "wraps", spintex),
	item("sw1", "Smoked Bacon & Cheese", "Premium bacon sandwich", 120, "sandwiches", eastLegon),
	item("sw2", "Smoked Turkey & Cheese", "Turkey delight", 120, "sandwiches", eastLegon),
	item("sw3", "Tuna Melt", "Warm tuna sandwich", 65, "sandwiches", eastLegon),
	item("sw4", "Chicken Mayo", "Creamy chicken", 65, "sandwiches", osu),
	item("sw5", "Tuna Mayo", "Light and fresh", 37, "sandwiches", osu),
	item("sw6", "Egg Sausage", "Breakfast favorite", 44, "sandwiches", osu),
	item("sw7", "Egg Bacon", "Classic combo", 85, "sandwiches", spintex),
	item("sw8", "Vege Mayo Sandwich", "Vegetarian option", 39, "sandwiches", spintex),
	item("sl1", "Plain Salad", "Fresh greens", 56, "salads", eastLegon),
	item("sl2", "Egg Salad", "With boiled eggs", 58, "salads", eastLegon),
	item("sl3", "Chicken Salad", "Grilled chicken", 73, "salads", osu),
	item("sl4", "Tuna Salad", "Fresh tuna", 80, "salads", osu),
	item("sd1", "Spicy Potato Wedges", "Crispy and spicy", 45, "sides", eastLegon),
	item("sd2", "Chicken Nuggets", "Golden nuggets", 45, "sides", eastLegon),
	item("sd3", "Hash Browns", "Crispy hash browns", 45, "sides", eastLegon),
	item("sd4", "Gizzard", "Seasoned gizzard", 45, "sides", osu),
	item("sd5", "6pc Chicken Wings", "Spicy wings", 53, "sides", osu),
	item("sd6", "Koose (3 pcs)", "Traditional koose", 10, "sides", osu),
	item("sd7", "Boffloat (2 pcs)", "Sweet boffloat", 15, "sides", spintex),
	item("sd8", "Bread Roll", "Fresh bread roll", 15, "sides", spintex),
	item("sd9", "Cheese Slice", "Premium cheese", 13, "sides", spintex),
	item("sd10", "Sausage", "Grilled sausage", 8, "sides", eastLegon),
	item("sd11", "Egg", "Fresh egg", 8, "sides", eastLegon),
	item("sd12", "Baked Beans", "Warm baked beans", 8, "sides", eastLegon),
	item("bk1", "Coconut Cake", "Moist coconut cake", 30, "bakery", eastLegon),
	item("bk2", "Marble Cake", "Chocolate marble", 30, "bakery", eastLegon),
	item("bk3", "Caramel Cake", "Sweet caramel", 30, "bakery", eastLegon),
	item("bk4", "Red Velvet Cake", "Classic red velvet", 30, "bakery", osu),
	item("bk5", "Banana Cake", "Fresh banana cake", 30, "bakery", osu),
	item("bk6", "Plain Doughnut", "Classic doughnut", 15, "bakery", osu),
	item("bk7", "Sugar Doughnut", "Sugar coated", 15, "bakery", spintex),
	item("bk8", "Coconut Doughnut", "Coconut topping", 15, "bakery", spintex),
	item("bk9", "Chocolate Doughnut", "Chocolate glazed", 15, "bakery", spintex),
	item("pr1", "Hausa Koko", "Traditional porridge", 20, "porridge", eastLegon),
	item("pr2", "Oblayo", "Corn porridge", 20, "porridge", eastLegon),
	item("pr3", "Ekugbemi", "Millet porridge", 20, "porridge", eastLegon),
	item("pr4", "Oats", "Healthy oats", 30, "porridge", osu),
	item("pr5", "Tom Brown", "Nutritious porridge", 30, "porridge", osu),
	item("pr6", "Rice Porridge", "Creamy rice", 30, "porridge", osu),
	item("pr7", "Wheat Porridge", "Wheat goodness", 30, "porridge", spintex),
	item("pr8", "White Porridge", "Classic porridge", 30, "porridge", spintex),
	item("pr9", "Milo", "Hot chocolate drink", 27, "porridge", spintex),
	item("pr10", "Tea", "Fresh tea", 27, "porridge", eastLegon),
	item("pr11", "Nescafe", "Hot coffee", 27, "porridge", eastLegon),
	item("dr1", "Sprite", "Lemon-lime soda", 15, "drinks", eastLegon),
	item("dr2", "Fanta", "Orange soda", 15, "drinks", eastLegon),
	item("dr3", "Coke Zero", "Zero sugar cola", 15, "drinks", eastLegon),
	item("dr4", "Coca-Cola", "Classic cola", 15, "drinks", osu),
	item("dr5", "Brewed Iced Coffee", "Cold brew coffee", 37, "drinks", osu),
	item("dr6", "Ice Green Tea", "Refreshing tea", 30, "drinks", osu),
	item("dr7", "Fresh Orange Juice", "Squeezed orange", 37, "drinks", spintex),
	item("dr8", "Fresh Pineapple Juice", "Tropical juice", 37, "drinks", spintex),
	item("dr9", "Fresh Watermelon Juice", "Sweet watermelon", 37, "drinks", spintex),
	item("dr10", "Bottled Water", "Pure water", 7, "drinks", eastLegon),
}

// BuiltIn returns a fresh copy of the compiled-in catalog.
func BuiltIn() []models.MenuItem {
	out := make([]models.MenuItem, len(builtIn))
	copy(out, builtIn)
	return out
}

// IsBuiltIn reports whether id names a compiled-in item.
func IsBuiltIn(id string) bool {
	_, ok := Lookup(id)
	return ok
}

func Lookup(id string) (models.MenuItem, bool) {
	for _, it := range builtIn {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}
