package models

const (
	CollectionStatusCollected = "COLLECTED"
	CollectionStatusNoShow    = "NO_SHOW"

	DisputeStatusApproved = "APPROVED"
	DisputeStatusDenied   = "DENIED"

	// reservation state machine
	ReservationStateNotReserved = "NOT_RESERVED"
	ReservationStateReserved    = "RESERVED"
	ReservationStateCollected   = CollectionStatusCollected
	ReservationStateNoShow      = CollectionStatusNoShow

	CategoryBreadBakedGoods     = "BREAD_BAKED_GOODS"
	CategorySweetTreatsDesserts = "SWEET_TREATS_DESSERTS"
	CategoryMeatProtein         = "MEAT_PROTEIN"
	CategoryFruitVegetables     = "FRUIT_VEGETABLES"
	CategoryDairyEggs           = "DAIRY_EGGS"
	CategoryReadyMealsHotFood   = "READY_MEALS_HOT_FOOD"
	CategorySnacksSavouryItems  = "SNACKS_SAVOURY_ITEMS"
	CategoryBreakfastItems      = "BREAKFAST_ITEMS"
	CategoryVeganVegetarian     = "VEGAN_VEGETARIAN"
	CategoryDrinksBeverages     = "DRINKS_BEVERAGES"
)

// CategoryLabels maps a category code to the label shown to customers.
var CategoryLabels = map[string]string{
	CategoryBreadBakedGoods:     "Bread & Baked Goods",
	CategorySweetTreatsDesserts: "Sweet Treats & Desserts",
	CategoryMeatProtein:         "Meat & Protein",
	CategoryFruitVegetables:     "Fruit & Vegetables",
	CategoryDairyEggs:           "Dairy & Eggs",
	CategoryReadyMealsHotFood:   "Ready Meals & Hot Food",
	CategorySnacksSavouryItems:  "Snacks & Savoury Items",
	CategoryBreakfastItems:      "Breakfast Items",
	CategoryVeganVegetarian:     "Vegan & Vegetarian",
	CategoryDrinksBeverages:     "Drinks & Beverages",
}

// CategoryLabel returns the display label, falling back to the raw code.
func CategoryLabel(category string) string {
	if label, ok := CategoryLabels[category]; ok {
		return label
	}
	return category
}
