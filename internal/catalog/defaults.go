package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/yishak-cs/marmitas/internal/models"
)

func daily(name, description, weight, price, image string) models.MenuItem {
	return models.MenuItem{
		Name:        name,
		Description: description,
		Weight:      weight,
		Price:       decimal.RequireFromString(price),
		Image:       image,
		Category:    models.CategoryDaily,
	}
}

func casserole(name, description string) models.MenuItem {
	return models.MenuItem{
		Name:        name,
		Description: description,
		Weight:      "350g",
		Price:       decimal.RequireFromString("23.00"),
		Image:       "images/escondidinho-carne-panela.png",
		Category:    models.CategoryCasserole,
	}
}

// DefaultItems returns the house menu
func DefaultItems() []models.MenuItem {
	return []models.MenuItem{
		daily("Frango grelhado com arroz, feijão e legumes",
			"Arroz branco (100g), feijão (100g), filé de frango grelhado (130g) e mix de legumes (100g).",
			"430g", "22.00", "images/frango.jpg"),
		daily("Carne moída com arroz, feijão e moranga",
			"Arroz branco (100g), feijão (100g), carne moída (130g) e purê de moranga cabotiá (100g).",
			"430g", "22.00", "images/carne_moida.png"),
		daily("Penne com iscas de alcatra e legumes",
			"Massa penne (100g), iscas de alcatra (130g) e mix de legumes (120g).",
			"350g", "20.00", "images/penne_alcatra.jpg"),
		daily("Penne com carne moída e legumes",
			"Massa penne (100g), carne moída (130g) e mix de legumes (120g).",
			"350g", "20.00", "images/penne_carne.jpg"),
		daily("Alcatra com arroz e purê de moranga",
			"Arroz branco (100g), iscas de alcatra (130g) e purê de moranga cabotiá (120g).",
			"350g", "20.00", "images/alcatra_moranga.png"),
		daily("Frango cremoso com arroz e legumes",
			"Arroz branco (100g), iscas de frango cremoso (130g) e mix de legumes (120g).",
			"350g", "20.00", "images/frango_cremoso.jpg"),

		casserole("Escondidinho de carne de panela com aipim",
			"Carne de panela desfiada (150g) com aipim cremoso (200g)."),
		casserole("Escondidinho de frango desfiado com aipim",
			"Frango desfiado temperado (150g) com aipim cremoso (200g)."),
		casserole("Escondidinho de carne de panela com moranga",
			"Carne de panela desfiada (150g) com purê de moranga cabotiá (200g)."),
		casserole("Escondidinho de carne moída com moranga",
			"Carne moída bem temperada (150g) com purê de moranga cabotiá (200g)."),
		casserole("Escondidinho de carne de panela com batata inglesa",
			"Carne de panela desfiada (150g) com purê de batata inglesa (200g)."),
		casserole("Escondidinho de frango desfiado com batata inglesa",
			"Frango desfiado temperado (150g) com purê de batata inglesa (200g)."),
		casserole("Escondidinho de carne moída com batata inglesa",
			"Carne moída refogada (150g) com purê de batata inglesa (200g)."),
	}
}

// Default returns the house menu as a catalog
func Default() *Catalog {
	c, err := New(DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}
