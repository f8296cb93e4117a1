package factories

import (
	"time"

	"github.com/chrisdamba/surplussim/internal/models"
)

type HourRange struct {
	Min int
	Max int
}

type PriceRange struct {
	Min int
	Max int
}

// VendorPattern describes a kind of shop: what it sells and when it trades.
type VendorPattern struct {
	Archetype  string
	Categories []string
	Open       HourRange
	Close      HourRange
	// hours shaved off closing time on these days
	ShortDays map[time.Weekday]int
	Weight    float64
}

var (
	VendorPatterns = map[string]VendorPattern{
		"bakery": {
			Archetype: "bakery",
			Categories: []string{
				models.CategoryBreadBakedGoods,
				models.CategorySweetTreatsDesserts,
				models.CategoryBreakfastItems,
				models.CategoryDrinksBeverages,
			},
			Open:      HourRange{Min: 6, Max: 8},
			Close:     HourRange{Min: 15, Max: 18},
			ShortDays: map[time.Weekday]int{time.Sunday: 2},
			Weight:    0.3,
		},
		"cafe": {
			Archetype: "cafe",
			Categories: []string{
				models.CategoryBreakfastItems,
				models.CategorySweetTreatsDesserts,
				models.CategoryDrinksBeverages,
				models.CategorySnacksSavouryItems,
				models.CategoryVeganVegetarian,
			},
			Open:   HourRange{Min: 7, Max: 9},
			Close:  HourRange{Min: 16, Max: 19},
			Weight: 0.25,
		},
		"grocer": {
			Archetype: "grocer",
			Categories: []string{
				models.CategoryFruitVegetables,
				models.CategoryDairyEggs,
				models.CategoryMeatProtein,
				models.CategorySnacksSavouryItems,
				models.CategoryDrinksBeverages,
			},
			Open:      HourRange{Min: 7, Max: 9},
			Close:     HourRange{Min: 19, Max: 22},
			ShortDays: map[time.Weekday]int{time.Sunday: 4},
			Weight:    0.2,
		},
		"restaurant": {
			Archetype: "restaurant",
			Categories: []string{
				models.CategoryReadyMealsHotFood,
				models.CategoryVeganVegetarian,
				models.CategoryMeatProtein,
				models.CategorySweetTreatsDesserts,
			},
			Open:   HourRange{Min: 11, Max: 12},
			Close:  HourRange{Min: 21, Max: 23},
			Weight: 0.15,
		},
		"deli": {
			Archetype: "deli",
			Categories: []string{
				models.CategoryMeatProtein,
				models.CategoryDairyEggs,
				models.CategoryReadyMealsHotFood,
				models.CategoryBreadBakedGoods,
			},
			Open:      HourRange{Min: 8, Max: 10},
			Close:     HourRange{Min: 17, Max: 20},
			ShortDays: map[time.Weekday]int{time.Saturday: 1, time.Sunday: 3},
			Weight:    0.1,
		},
	}

	// ProductCatalogue lists product names and a unit price band per category.
	ProductCatalogue = map[string]struct {
		Names []string
		Price PriceRange
	}{
		models.CategoryBreadBakedGoods: {
			Names: []string{"Sourdough Loaf", "Seeded Rye", "Baguette", "Focaccia", "Bagels (4)", "Ciabatta", "Wholemeal Bloomer"},
			Price: PriceRange{Min: 1, Max: 6},
		},
		models.CategorySweetTreatsDesserts: {
			Names: []string{"Chocolate Brownie", "Lemon Tart", "Cinnamon Bun", "Carrot Cake Slice", "Eclair", "Cheesecake", "Macarons (6)"},
			Price: PriceRange{Min: 2, Max: 7},
		},
		models.CategoryMeatProtein: {
			Names: []string{"Chicken Thighs", "Beef Mince", "Pork Sausages", "Smoked Salmon", "Lamb Chops", "Tofu Block"},
			Price: PriceRange{Min: 3, Max: 10},
		},
		models.CategoryFruitVegetables: {
			Names: []string{"Apples (6)", "Bananas", "Mixed Salad Bag", "Tomatoes", "Broccoli", "Strawberries", "Carrots"},
			Price: PriceRange{Min: 1, Max: 4},
		},
		models.CategoryDairyEggs: {
			Names: []string{"Free Range Eggs (6)", "Whole Milk", "Cheddar", "Greek Yoghurt", "Butter", "Brie"},
			Price: PriceRange{Min: 1, Max: 6},
		},
		models.CategoryReadyMealsHotFood: {
			Names: []string{"Lasagne", "Chicken Curry", "Mac and Cheese", "Shepherd's Pie", "Falafel Wrap", "Pad Thai", "Soup of the Day"},
			Price: PriceRange{Min: 4, Max: 11},
		},
		models.CategorySnacksSavouryItems: {
			Names: []string{"Sausage Roll", "Pasty", "Scotch Egg", "Crisps", "Samosas (2)", "Pork Pie"},
			Price: PriceRange{Min: 1, Max: 5},
		},
		models.CategoryBreakfastItems: {
			Names: []string{"Croissant", "Pain au Chocolat", "Granola Pot", "Breakfast Muffin", "Porridge", "Bacon Bap"},
			Price: PriceRange{Min: 1, Max: 5},
		},
		models.CategoryVeganVegetarian: {
			Names: []string{"Buddha Bowl", "Vegan Sausage Roll", "Halloumi Salad", "Lentil Dahl", "Veggie Burger"},
			Price: PriceRange{Min: 3, Max: 9},
		},
		models.CategoryDrinksBeverages: {
			Names: []string{"Fresh Orange Juice", "Smoothie", "Kombucha", "Iced Latte", "Sparkling Water", "Lemonade"},
			Price: PriceRange{Min: 1, Max: 4},
		},
	}
)

// archetypes in a fixed order so weighted selection is reproducible
var archetypeOrder = []string{"bakery", "cafe", "grocer", "restaurant", "deli"}
