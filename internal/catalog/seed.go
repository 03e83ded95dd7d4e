package catalog

import "github.com/casamaria/storefront-backend/pkg/enums"

// seedItems is the default menu shipped with the storefront. Reset restores
// exactly this list.
var seedItems = []MenuItem{
	{
		ID:          "seed-1",
		Name:        "Burger Tradicional",
		Description: "Carne 100% de res seleccionada, queso cheddar fundido, lechuga fresca, tomate y nuestra salsa secreta.",
		Price:       24000,
		Category:    enums.MenuCategoryBurger,
		Image:       "https://images.unsplash.com/photo-1596662951482-0c4ba74a6df6?auto=format&fit=crop&w=800&q=80",
		Popular:     true,
	},
	{
		ID:          "seed-2",
		Name:        "Bacon Cheese",
		Description: "Doble carne jugosa, tiras de tocino ahumado crujiente, doble queso cheddar y cebolla caramelizada.",
		Price:       29000,
		Category:    enums.MenuCategoryBurger,
		Image:       "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?auto=format&fit=crop&w=800&q=80",
		Popular:     true,
	},
	{
		ID:          "seed-3",
		Name:        "Mushroom Swiss",
		Description: "Carne premium cubierta con champiñones salteados al ajillo y queso suizo derretido.",
		Price:       27000,
		Category:    enums.MenuCategoryBurger,
		Image:       "https://images.unsplash.com/photo-1550547660-d9450f859349?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "seed-4",
		Name:        "Combo Pareja",
		Description: "2 Burger Tradicionales, 2 porciones de papas medianas y 2 bebidas a elección.",
		Price:       55000,
		Category:    enums.MenuCategoryCombo,
		Image:       "https://images.unsplash.com/photo-1610440042657-612c34d95e9f?auto=format&fit=crop&w=800&q=80",
		Popular:     true,
	},
	{
		ID:          "seed-5",
		Name:        "Papas Fritas",
		Description: "Corte tradicional, crocantes por fuera y suaves por dentro, sazonadas con sal de mar.",
		Price:       8000,
		Category:    enums.MenuCategorySide,
		Image:       "https://images.unsplash.com/photo-1630384060421-cb20d0e0649d?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "seed-6",
		Name:        "Aros de Cebolla",
		Description: "Aros de cebolla dorados y crujientes, servidos con nuestra salsa ranch casera.",
		Price:       12000,
		Category:    enums.MenuCategorySide,
		Image:       "https://images.unsplash.com/photo-1639024471283-03518883512d?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "seed-7",
		Name:        "Malteada de Vainilla",
		Description: "Cremosa malteada hecha con helado artesanal de vainilla y crema batida.",
		Price:       14000,
		Category:    enums.MenuCategoryDrink,
		Image:       "https://images.unsplash.com/photo-1572490122747-3968b75cc699?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "seed-8",
		Name:        "Limonada Natural",
		Description: "Clásica y refrescante, hecha con limones recién exprimidos, hielo frappé y un toque de hierbabuena.",
		Price:       8000,
		Category:    enums.MenuCategoryDrink,
		Image:       "https://images.unsplash.com/photo-1513558161293-cdaf765ed2fd?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "seed-9",
		Name:        "Limonada de Coco",
		Description: "Exótica y cremosa, preparada con leche de coco artesanal y limón fresco. ¡La favorita!",
		Price:       12000,
		Category:    enums.MenuCategoryDrink,
		Image:       "https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?auto=format&fit=crop&w=800&q=80",
		Popular:     true,
	},
	{
		ID:          "seed-10",
		Name:        "Limonada Cerezada",
		Description: "Dulce y cítrica fusión de limonada frappé con cerezas marrasquino.",
		Price:       10000,
		Category:    enums.MenuCategoryDrink,
		Image:       "https://images.unsplash.com/photo-1621263764928-df1444c5e859?auto=format&fit=crop&w=800&q=80",
	},
}

// SeedItems returns a fresh copy of the default menu.
func SeedItems() []MenuItem {
	items := make([]MenuItem, len(seedItems))
	copy(items, seedItems)
	return items
}
