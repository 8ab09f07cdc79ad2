package constants

// StoreCategories is the fixed set of categories offered to sellers during
// signup. Sellers may also type their own, so category listings merge this
// list with whatever is already stored on seller records.
var StoreCategories = []string{
	"Fashion & Clothing",
	"Electronics",
	"Phones & Accessories",
	"Food & Groceries",
	"Health & Beauty",
	"Home & Living",
	"Baby & Kids",
	"Sports & Fitness",
	"Books & Stationery",
	"Automotive",
	"Agriculture",
	"Jewelry & Accessories",
	"Art & Crafts",
	"Services",
	"Other",
}
