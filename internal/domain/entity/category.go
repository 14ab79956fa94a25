package entity

// Closed list of product categories, in display order.
const (
	CategoryCars        = "Machin"
	CategoryHouses      = "Kay"
	CategoryCarParts    = "Pyes machin"
	CategoryMotoParts   = "Pyes moto"
	CategoryPhones      = "Telefòn"
	CategoryAccessories = "Akseswa"
	CategoryElectronics = "Elektwonik"
	CategorySneakers    = "Tenis"
	CategoryClothes     = "Rad"
	CategoryBeauty      = "Pwodwi Bote"
	CategoryAppliances  = "Elektwo-menaje"
	CategoryKids        = "Pwodwi Timoun"
	CategoryBooks       = "Liv"
	CategoryFurniture   = "Mèb"
	CategoryTools       = "Zouti"
	CategoryHomeGoods   = "Atik Kay"
	CategoryCrafts      = "Kado & Atizana"
	CategoryKitchen     = "Atik Kwizin"
	CategoryFarming     = "Agrikilti"
	CategorySecondHand  = "Pèpè"
	CategoryFood        = "Manje ak Bwason"
	CategoryErotic      = "Erotik"
	CategoryOther       = "Lòt"
)

var Categories = []string{
	CategoryCars, CategoryHouses, CategoryCarParts, CategoryMotoParts, CategoryPhones,
	CategoryAccessories, CategoryElectronics, CategorySneakers, CategoryClothes, CategoryBeauty,
	CategoryAppliances, CategoryKids, CategoryBooks, CategoryFurniture, CategoryTools,
	CategoryHomeGoods, CategoryCrafts, CategoryKitchen, CategoryFarming, CategorySecondHand,
	CategoryFood, CategoryErotic, CategoryOther,
}

// SensitiveCategories stay out of the general market listing unless selected.
var SensitiveCategories = []string{CategoryFood, CategoryErotic}

func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func IsSensitiveCategory(name string) bool {
	for _, c := range SensitiveCategories {
		if c == name {
			return true
		}
	}
	return false
}
