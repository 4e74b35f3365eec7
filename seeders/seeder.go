package seeders

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kitchen-api/models"
	"kitchen-api/utils/dates"
)

func intPtr(n int) *int {
	return &n
}

// Seed creates the admin account and a small sample catalog with
// today's menu. Safe to run repeatedly.
func Seed(db *gorm.DB, log *zap.Logger, loc *time.Location) {

	// ============= Users =============
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	customerHash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)

	users := []models.User{
		{Name: "Saangee", PhoneNumber: "5550100001", PasswordHash: string(adminHash), Role: models.RoleAdmin},
		{Name: "Priya", PhoneNumber: "5550100002", PasswordHash: string(customerHash), Role: models.RoleCustomer},
	}
	for _, user := range users {
		db.Where(models.User{PhoneNumber: user.PhoneNumber}).FirstOrCreate(&user)
	}

	// ============= Modifier groups =============
	size := models.ModifierGroup{Name: "Size", MinSelect: 1, MaxSelect: intPtr(1)}
	db.Where(models.ModifierGroup{Name: size.Name}).FirstOrCreate(&size)

	sizeOptions := []models.ModifierOption{
		{ModifierGroupID: size.ID, Name: "Regular", PriceDelta: 0, SortOrder: 0},
		{ModifierGroupID: size.ID, Name: "Large", PriceDelta: 300, SortOrder: 1},
	}
	for _, opt := range sizeOptions {
		db.Where(models.ModifierOption{ModifierGroupID: size.ID, Name: opt.Name}).FirstOrCreate(&opt)
	}

	spice := models.ModifierGroup{Name: "Spice level", MinSelect: 0, MaxSelect: intPtr(1)}
	db.Where(models.ModifierGroup{Name: spice.Name}).FirstOrCreate(&spice)

	spiceOptions := []models.ModifierOption{
		{ModifierGroupID: spice.ID, Name: "Mild", PriceDelta: 0, SortOrder: 0},
		{ModifierGroupID: spice.ID, Name: "Medium", PriceDelta: 0, SortOrder: 1},
		{ModifierGroupID: spice.ID, Name: "Hot", PriceDelta: 0, SortOrder: 2},
	}
	for _, opt := range spiceOptions {
		db.Where(models.ModifierOption{ModifierGroupID: spice.ID, Name: opt.Name}).FirstOrCreate(&opt)
	}

	// ============= Menu items =============
	items := []models.MenuItem{
		{Name: "Chicken Biryani", Description: "Fragrant basmati rice with spiced chicken", BasePrice: 1400},
		{Name: "Masala Dosa", Description: "Crisp dosa with potato filling and chutneys", BasePrice: 1000},
		{Name: "Paneer Tikka", Description: "Char-grilled paneer with peppers", BasePrice: 1200},
		{Name: "Mango Lassi", Description: "Sweet yogurt drink", BasePrice: 500},
	}
	for i := range items {
		db.Where(models.MenuItem{Name: items[i].Name}).FirstOrCreate(&items[i])
	}

	for _, item := range items[:3] {
		links := []models.MenuItemModifierGroup{
			{MenuItemID: item.ID, ModifierGroupID: size.ID, SortOrder: 0},
			{MenuItemID: item.ID, ModifierGroupID: spice.ID, SortOrder: 1},
		}
		for _, link := range links {
			db.Where(models.MenuItemModifierGroup{MenuItemID: link.MenuItemID, ModifierGroupID: link.ModifierGroupID}).
				FirstOrCreate(&link)
		}
	}

	// ============= Today's menu =============
	today, _ := dates.ParseDay(dates.DayString(time.Now(), loc), loc)
	for order, item := range items {
		entry := models.MenuEntry{Date: today, MenuItemID: item.ID, SortOrder: order}
		db.Where(models.MenuEntry{Date: today, MenuItemID: item.ID, IsCustom: false}).FirstOrCreate(&entry)
	}

	log.Info("seed complete")
}
