package database

import (
	"context"

	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/infrastructure/repository"
	"github.com/jraflores/tindahan-api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDemoData loads a small espresso-bar catalog so a fresh install can ring
// up sales immediately. Idempotent: existing rows (matched by code/name) are
// left alone.
func SeedDemoData(db *gorm.DB) error {
	log := logger.WithComponent("database")
	ctx := context.Background()

	inventoryRepo := repository.NewInventoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	items := []entity.InventoryItem{
		{Name: "Coffee Beans", Unit: "g", Quantity: decimal.NewFromInt(5000), ReorderLevel: decimal.NewFromInt(500), CostPerUnit: decimal.NewFromFloat(0.65)},
		{Name: "Fresh Milk", Unit: "ml", Quantity: decimal.NewFromInt(12000), ReorderLevel: decimal.NewFromInt(2000), CostPerUnit: decimal.NewFromFloat(0.09)},
		{Name: "Paper Cups", Unit: "pcs", Quantity: decimal.NewFromInt(300), ReorderLevel: decimal.NewFromInt(50), CostPerUnit: decimal.NewFromFloat(3.50)},
	}
	itemIDs := make(map[string]entity.InventoryItem)

	for i := range items {
		var existing entity.InventoryItem
		err := db.Where("name = ?", items[i].Name).First(&existing).Error
		if err == nil {
			itemIDs[existing.Name] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := inventoryRepo.CreateItem(ctx, &items[i]); err != nil {
			return err
		}
		itemIDs[items[i].Name] = items[i]
	}

	products := []struct {
		product entity.Product
		recipe  map[string]decimal.Decimal // item name -> qty per unit
	}{
		{
			product: entity.Product{Name: "Espresso", Code: "ESP", Price: decimal.NewFromFloat(80.00), Category: "coffee", Active: true},
			recipe: map[string]decimal.Decimal{
				"Coffee Beans": decimal.NewFromInt(18),
				"Paper Cups":   decimal.NewFromInt(1),
			},
		},
		{
			product: entity.Product{Name: "Cafe Latte", Code: "LAT", Price: decimal.NewFromFloat(120.00), Category: "coffee", Active: true},
			recipe: map[string]decimal.Decimal{
				"Coffee Beans": decimal.NewFromInt(18),
				"Fresh Milk":   decimal.NewFromInt(180),
				"Paper Cups":   decimal.NewFromInt(1),
			},
		},
		{
			// No recipe on purpose: selling it moves no stock.
			product: entity.Product{Name: "Gift Card", Code: "GIFT", Price: decimal.NewFromFloat(500.00), Category: "other", Active: true},
		},
	}

	for _, p := range products {
		var existing entity.Product
		err := db.Where("code = ?", p.product.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		product := p.product
		if err := productRepo.CreateProduct(ctx, &product); err != nil {
			return err
		}

		position := 0
		for itemName, qty := range p.recipe {
			item, ok := itemIDs[itemName]
			if !ok {
				continue
			}
			line := entity.RecipeLine{
				ProductID:       product.ID,
				InventoryItemID: item.ID,
				QtyPerUnit:      qty,
				Position:        position,
			}
			if err := productRepo.CreateRecipeLine(ctx, &line); err != nil {
				return err
			}
			position++
		}
	}

	log.Info("demo catalog seeded")
	return nil
}
