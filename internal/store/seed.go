package store

// Default catalog seed rows, written on first run when the corresponding
// table is absent. Operators can edit the generated CSV files afterwards;
// the seeds are only a starting point.

func seedTaskRows() [][]string {
	return [][]string{
		{"Basic", "Selective Collection", "Separate paper, plastic, metal and glass correctly.", "15", "25"},
		{"Basic", "Water Saving", "Keep your shower under 10 minutes.", "15", "25"},
		{"Basic", "Energy Saving", "Unplug unused appliances for 24 hours.", "15", "25"},
		{"Intermediate", "Home Garden", "Plant a seedling and record its growth.", "30", "50"},
		{"Intermediate", "Composting", "Start composting your organic waste.", "35", "50"},
		{"Advanced", "Impact Project", "Create a sustainability project in your community.", "60", "80"},
	}
}

func seedRewardRows() [][]string {
	return [][]string{
		{"sticker-pack", "Basic", "Sticker Pack", "A set of Green+ vinyl stickers.", "40"},
		{"seed-kit", "Basic", "Seed Kit", "Herb and vegetable seeds for your first garden.", "80"},
		{"bottle", "Intermediate", "Reusable Bottle", "Stainless steel bottle with the Green+ logo.", "150"},
		{"tote-bag", "Intermediate", "Tote Bag", "Organic cotton shopping bag.", "200"},
		{"workshop", "Advanced", "Eco Workshop", "A seat in a hands-on sustainability workshop.", "350"},
		{"tree", "Advanced", "Planted Tree", "A tree planted in your name.", "500"},
	}
}
