package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/config"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"gorm.io/gorm"
)

var productNames = map[string]string{
	catalogdomain.CodeStandard:     "Mazout standard",
	catalogdomain.CodeDegressive:   "Mazout dégressif",
	catalogdomain.CodeStandardUL:   "Mazout standard Ultra",
	catalogdomain.CodeDegressiveUL: "Mazout dégressif Ultra",
}

// EnsureCatalog seeds the fuel products and the zone price lists so a
// fresh install can quote immediately. Existing rows are left alone.
func EnsureCatalog(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, code := range catalogdomain.Codes() {
			if err := ensureProductTx(ctx, tx, node, code); err != nil {
				return err
			}
		}
		for code, pricelistID := range cfg.Fuel.Zones {
			degressive := code != cfg.Fuel.DefaultPostalCode
			if err := ensurePriceListTx(ctx, tx, node, pricelistID, code, degressive, cfg.Fuel.DegressiveThreshold); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureProductTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, code string) error {
	var count int64
	if err := tx.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM products WHERE code = ?`, code,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	product := &catalogdomain.Product{
		ID:        node.Generate(),
		Code:      code,
		Name:      productNames[code],
		ListPrice: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(product).Error; err != nil {
		return err
	}
	variant := &catalogdomain.Variant{
		ID:        node.Generate(),
		ProductID: product.ID,
		Name:      product.Name,
		LstPrice:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(variant).Error
}

func ensurePriceListTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, id int64, postalCode string, degressive bool, threshold float64) error {
	var count int64
	if err := tx.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM pricelists WHERE id = ?`, id,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	pricelist := &pricingdomain.PriceList{
		ID:               id,
		Name:             fmt.Sprintf("Zone %s", postalCode),
		CurrencyCode:     "EUR",
		CurrencyDecimals: 2,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := tx.WithContext(ctx).Create(pricelist).Error; err != nil {
		return err
	}
	if !degressive {
		return nil
	}

	// Remote zones carry a volume discount above the degressive
	// threshold on top of the published list price.
	rule := &pricingdomain.PriceRule{
		ID:             node.Generate(),
		PricelistID:    id,
		MinQuantity:    threshold,
		ComputePrice:   pricingdomain.ComputeFormula,
		PriceDiscount:  0.05,
		PriceSurcharge: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return tx.WithContext(ctx).Create(rule).Error
}
