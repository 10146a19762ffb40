package bootstrap

type demoItem struct {
	Name        string
	Description string
	Price       string
}

type demoCategory struct {
	Name        string
	Description string
	Items       []demoItem
}

var demoMenu = []demoCategory{
	{
		Name:        "Appetizers",
		Description: "Small plates to start with",
		Items: []demoItem{
			{"Bruschetta", "Grilled bread, tomatoes, garlic, basil", "8.50"},
			{"Garlic Bread", "Baked baguette with garlic butter", "5.90"},
			{"Mozzarella Sticks", "Breaded mozzarella with marinara sauce", "7.90"},
		},
	},
	{
		Name:        "Main Courses",
		Description: "Burgers, pizzas and pasta",
		Items: []demoItem{
			{"Classic Burger", "150g beef, cheddar, tomato, lettuce, house sauce", "14.90"},
			{"Margherita Pizza", "Tomato sauce, mozzarella, basil", "12.90"},
			{"Pasta Bolognese", "Beef ragù, parmesan", "13.50"},
			{"Vegan Burger", "Vegetable patty, avocado, rocket, red onion", "13.90"},
		},
	},
	{
		Name:        "Desserts",
		Description: "Homemade sweets",
		Items: []demoItem{
			{"Cheesecake", "Classic baked cheesecake", "6.50"},
			{"Rice Pudding", "Oven-baked rice pudding", "5.50"},
			{"Baklava", "Three slices with pistachio", "7.00"},
		},
	},
	{
		Name:        "Beverages",
		Description: "Hot and cold drinks",
		Items: []demoItem{
			{"Cola", "330ml", "3.00"},
			{"Fresh Orange Juice", "Squeezed to order", "4.50"},
			{"Turkish Coffee", "Traditional, served with delight", "3.50"},
			{"Ayran", "250ml", "2.50"},
		},
	},
	{
		Name:        "Salads",
		Description: "Fresh and seasonal",
		Items: []demoItem{
			{"Caesar Salad", "Romaine, parmesan, croutons, caesar dressing", "9.90"},
			{"Greek Salad", "Tomato, cucumber, olives, feta", "8.90"},
		},
	},
}
