package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/security"
)

// Seeds a demo village with a community, an SME, a category, an offer, a
// short link and a super admin account. Safe to run repeatedly: every row is
// looked up by its natural key before insert.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := seed(ctx, dbClient.DB()); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seed complete")
}

func seed(ctx context.Context, gdb *gorm.DB) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		village := models.Village{Name: "Bayan", Slug: "bayan", IsActive: true}
		if err := tx.Where("slug = ?", village.Slug).FirstOrCreate(&village).Error; err != nil {
			return err
		}

		community := models.Community{VillageID: village.ID, Name: "Kerajinan", Slug: "kerajinan", IsActive: true}
		if err := tx.Where("village_id = ? AND slug = ?", village.ID, community.Slug).FirstOrCreate(&community).Error; err != nil {
			return err
		}

		category := models.Category{
			VillageID: village.ID,
			Name:      "Kerajinan Tangan",
			Slug:      "kerajinan-tangan",
			Type:      enums.CategoryTypeSme,
		}
		if err := tx.Where("village_id = ? AND slug = ?", village.ID, category.Slug).FirstOrCreate(&category).Error; err != nil {
			return err
		}

		sme := models.Sme{
			CommunityID: community.ID,
			Name:        "Kerajinan Bambu",
			Slug:        "kerajinan-bambu",
			Type:        enums.SmeTypeProduct,
			IsActive:    true,
		}
		if err := tx.Where("community_id = ? AND slug = ?", community.ID, sme.Slug).FirstOrCreate(&sme).Error; err != nil {
			return err
		}

		offer := models.Offer{
			SmeID:        &sme.ID,
			CategoryID:   &category.ID,
			Name:         "Tas Anyaman",
			Slug:         "tas-anyaman",
			Price:        decimal.NewFromInt(50000),
			Availability: enums.OfferAvailabilityAvailable,
			IsActive:     true,
		}
		if err := tx.Where("slug = ?", offer.Slug).FirstOrCreate(&offer).Error; err != nil {
			return err
		}

		link := models.ExternalLink{
			VillageID: &village.ID,
			Subdomain: "contact",
			Slug:      "whatsapp",
			TargetURL: "https://wa.me/6281234567890",
			IsActive:  true,
		}
		if err := tx.Where("subdomain = ? AND slug = ?", link.Subdomain, link.Slug).FirstOrCreate(&link).Error; err != nil {
			return err
		}

		return seedAdmin(tx, village.ID)
	})
}

func seedAdmin(tx *gorm.DB, villageID uuid.UUID) error {
	password := os.Getenv("SMARTDESA_SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-please"
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Platform Admin",
		Email:        "admin@smartdesa.id",
		PasswordHash: hash,
		Role:         enums.UserRoleSuperAdmin,
		IsActive:     true,
	}
	if err := tx.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	villageAdmin := models.User{
		Name:         "Bayan Admin",
		Email:        "bayan@smartdesa.id",
		PasswordHash: hash,
		Role:         enums.UserRoleVillageAdmin,
		VillageID:    &villageID,
		IsActive:     true,
	}
	return tx.Where("email = ?", villageAdmin.Email).FirstOrCreate(&villageAdmin).Error
}
