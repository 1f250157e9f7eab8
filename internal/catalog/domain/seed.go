package domain

// SeedCatalog is the starter inventory installed on first boot and restored
// by an admin reset. Values are load-bearing: clients and compatibility
// tests depend on them.
func SeedCatalog() []Item {
	return []Item{
		{Key: "chocolates", Name: "Chocolates", Stock: 5, Price: 20},
		{Key: "biscuits", Name: "Biscuits", Stock: 8, Price: 10},
		{Key: "chips", Name: "Chips", Stock: 6, Price: 15},
		{Key: "juice", Name: "Juice", Stock: 7, Price: 25},
		{Key: "soft-drinks", Name: "Soft Drinks", Stock: 9, Price: 30},
		{Key: "canned-food", Name: "Canned Food", Stock: 4, Price: 45},
		{Key: "rice", Name: "Rice", Stock: 7, Price: 60},
		{Key: "salt", Name: "Salt", Stock: 10, Price: 18},
	}
}
