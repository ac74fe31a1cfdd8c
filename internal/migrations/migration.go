package migrations

import (
	"context"
	"strings"

	"donerci/internal/apperr"
	"donerci/internal/database"
	"donerci/internal/models"
	"donerci/internal/repository"
	"donerci/internal/services"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	// Drop recreates every table before migrating.
	Drop          bool
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// DemoItems adds that many generated menu items to the catalog.
	DemoItems int
	Logger    *zap.Logger
}

type sampleRestaurant struct {
	restaurant models.Restaurant
	menu       []models.MenuItem
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var sampleCatalog = []sampleRestaurant{
	{
		restaurant: models.Restaurant{Name: "Istanbul Grill", Cuisine: "Turkish", Address: "123 Main St", Rating: 4.5},
		menu: []models.MenuItem{
			{Name: "Chicken Doner Wrap", Description: "Marinated chicken, garlic sauce, pickles", Price: price("9.50"), ImageURL: "/images/chicken-doner.jpg"},
			{Name: "Iskender Kebab", Description: "Sliced lamb over pide with tomato butter and yoghurt", Price: price("16.00"), ImageURL: "/images/iskender.jpg"},
			{Name: "Ayran", Description: "Chilled salted yoghurt drink", Price: price("1.50"), ImageURL: "/images/ayran.jpg"},
		},
	},
	{
		restaurant: models.Restaurant{Name: "Antalya Kebab", Cuisine: "Mediterranean", Address: "456 Oak Ave", Rating: 4.2},
		menu: []models.MenuItem{
			{Name: "Adana Kebab", Description: "Spicy minced lamb skewer with bulgur", Price: price("12.00"), ImageURL: "/images/adana.jpg"},
			{Name: "Lahmacun", Description: "Thin flatbread with spiced minced meat", Price: price("7.50"), ImageURL: "/images/lahmacun.jpg"},
		},
	},
	{
		restaurant: models.Restaurant{Name: "Bosphorus Delight", Cuisine: "Turkish", Address: "789 Pine Rd", Rating: 4.8},
		menu: []models.MenuItem{
			{Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: price("14.99"), ImageURL: "/images/margherita.jpg"},
			{Name: "Baklava", Description: "Pistachio baklava, four pieces", Price: price("4.00"), ImageURL: "/images/baklava.jpg"},
		},
	},
}

// RunMigrations migrates the schema and creates default data. Seeding is
// idempotent: restaurants are only added to an empty catalog and the
// administrator only when the email is unused.
func RunMigrations(db *gorm.DB, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("running database migrations")

	if opts.Drop {
		logger.Warn("dropping existing tables")
		if err := db.Migrator().DropTable(database.Models()...); err != nil {
			logger.Warn("error dropping tables", zap.Error(err))
		}
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := createDefaultData(db, opts, logger); err != nil {
		return err
	}

	logger.Info("database migrations completed")
	return nil
}

// createDefaultData creates the administrator and the sample catalog
func createDefaultData(db *gorm.DB, opts Options, logger *zap.Logger) error {
	ctx := context.Background()

	if opts.AdminEmail != "" {
		userRepo := repository.NewUserRepository(db)
		activities := services.NewActivityService(repository.NewActivityRepository(db), nil, logger)
		userService := services.NewUserService(userRepo, activities, logger)

		email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
		_, err := userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			logger.Info("administrator already exists", zap.String("email", email))
		case !apperr.IsNotFound(err):
			return err
		default:
			name := opts.AdminName
			if name == "" {
				name = "Admin User"
			}
			if _, err := userService.CreateUser(ctx, &services.UserInput{
				Name:     name,
				Email:    email,
				Password: opts.AdminPassword,
				Role:     string(models.RoleAdmin),
			}, "system"); err != nil {
				return err
			}
			logger.Info("administrator created", zap.String("email", email))
		}
	}

	var restaurants int64
	if err := db.Model(&models.Restaurant{}).Count(&restaurants).Error; err != nil {
		return err
	}
	if restaurants == 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, sample := range sampleCatalog {
				r := sample.restaurant
				if err := tx.Create(&r).Error; err != nil {
					return err
				}
				for _, item := range sample.menu {
					item.RestaurantID = &r.ID
					if err := tx.Create(&item).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("sample catalog created", zap.Int("restaurants", len(sampleCatalog)))
	}

	if opts.DemoItems > 0 {
		if err := createDemoItems(db, opts.DemoItems); err != nil {
			return err
		}
		logger.Info("demo menu items created", zap.Int("count", opts.DemoItems))
	}
	return nil
}

func createDemoItems(db *gorm.DB, n int) error {
	fake := faker.New()
	items := make([]models.MenuItem, 0, n)
	for i := 0; i < n; i++ {
		word := fake.Lorem().Word()
		items = append(items, models.MenuItem{
			Name:        "House " + strings.ToUpper(word[:1]) + word[1:],
			Description: fake.Lorem().Sentence(8),
			Price:       decimal.NewFromFloat(fake.Float64(2, 3, 25)).Round(2),
			ImageURL:    fake.Internet().URL(),
		})
	}
	return db.Create(&items).Error
}
