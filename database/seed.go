package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
	"gorm.io/gorm"
)

// TableLayout is the dining room: 15 two-tops, 20 four-tops, 10 six-tops
// and 5 eight-tops, numbered in that order.
func TableLayout() []models.Table {
	groups := []struct{ count, capacity int }{
		{15, 2}, {20, 4}, {10, 6}, {5, 8},
	}
	var tables []models.Table
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			n := len(tables) + 1
			tables = append(tables, models.Table{
				ID:       uint(n),
				Name:     fmt.Sprintf("Table %d", n),
				Capacity: g.capacity,
			})
		}
	}
	return tables
}

func DefaultSettings() models.StoreSettings {
	return models.StoreSettings{
		Name:    "R-Coffee",
		Address: "123 Coffee Lane, Brewsville, CA 94321",
		Phone:   "(555) 123-4567",
		Email:   "info@rcoffee.com",
	}
}

func defaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Espresso", Description: "Rich and bold single shot of espresso", Price: 3.5, Category: models.CategoryCoffee, Image: "/images/menu/espresso.jpg"},
		{Name: "Cappuccino", Description: "Espresso with steamed milk and a deep layer of foam", Price: 4.5, Category: models.CategoryCoffee, Image: "/images/menu/cappuccino.jpg"},
		{Name: "Latte", Description: "Espresso with plenty of steamed milk and light foam", Price: 4.75, Category: models.CategoryCoffee, Image: "/images/menu/latte.jpg"},
		{Name: "Americano", Description: "Espresso diluted with hot water", Price: 3.75, Category: models.CategoryCoffee, Image: "/images/menu/americano.jpg"},
		{Name: "Mocha", Description: "Espresso with chocolate, steamed milk and whipped cream", Price: 5.25, Category: models.CategoryCoffee, Image: "/images/menu/mocha.jpg"},
		{Name: "Green Tea", Description: "Delicate loose leaf green tea", Price: 3.75, Category: models.CategoryTea, Image: "/images/menu/green-tea.jpg"},
		{Name: "Earl Grey", Description: "Black tea scented with bergamot", Price: 3.75, Category: models.CategoryTea, Image: "/images/menu/earl-grey.jpg"},
		{Name: "Croissant", Description: "Buttery, flaky French pastry", Price: 3.5, Category: models.CategoryPastry, Image: "/images/menu/croissant.jpg"},
		{Name: "Blueberry Muffin", Description: "Moist muffin packed with blueberries", Price: 3.75, Category: models.CategoryPastry, Image: "/images/menu/blueberry-muffin.jpg"},
		{Name: "Avocado Toast", Description: "Smashed avocado on sourdough with chili flakes", Price: 8.5, Category: models.CategoryBreakfast, Image: "/images/menu/avocado-toast.jpg"},
		{Name: "Breakfast Sandwich", Description: "Egg, cheese and bacon on a toasted brioche bun", Price: 7.5, Category: models.CategoryBreakfast, Image: "/images/menu/breakfast-sandwich.jpg"},
		{Name: "Chicken Salad", Description: "Grilled chicken over mixed greens", Price: 12.5, Category: models.CategoryLunch, Image: "/images/menu/chicken-salad.jpg"},
		{Name: "Veggie Wrap", Description: "Roasted vegetables and hummus in a spinach wrap", Price: 9.5, Category: models.CategoryLunch, Image: "/images/menu/veggie-wrap.jpg"},
		{Name: "Chocolate Cake", Description: "Layered dark chocolate cake", Price: 6.5, Category: models.CategoryDessert, Image: "/images/menu/chocolate-cake.jpg"},
		{Name: "Tiramisu", Description: "Coffee soaked ladyfingers with mascarpone", Price: 7.0, Category: models.CategoryDessert, Image: "/images/menu/tiramisu.jpg"},
	}
}

type seedUser struct {
	name, email, password string
	role                  models.Role
	status                models.UserStatus
}

var defaultUsers = []seedUser{
	{"Super Admin", "super_admin@rcoffee.com", "admin123", models.RoleSuperAdmin, models.UserStatusApproved},
	{"Admin", "admin@rcoffee.com", "admin123", models.RoleAdmin, models.UserStatusApproved},
	{"Cashier", "cashier@rcoffee.com", "cashier123", models.RoleCashier, models.UserStatusApproved},
	{"Customer", "customer@example.com", "customer123", models.RoleCustomer, models.UserStatusApproved},
}

// Seed fills an empty database with the default users, tables, menu and
// store settings. Existing rows are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	users := NewUserRepository(db)
	for _, su := range defaultUsers {
		_, err := users.FindByEmail(ctx, su.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		hash, err := utils.HashPassword(su.password)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, &models.User{
			Name: su.name, Email: su.email, Password: hash, Role: su.role, Status: su.status,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}

	tables := NewTableRepository(db)
	if n, err := tables.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		if err := tables.CreateBatch(ctx, TableLayout()); err != nil {
			return fmt.Errorf("seed tables: %w", err)
		}
	}

	var menuCount int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&menuCount).Error; err != nil {
		return err
	}
	if menuCount == 0 {
		if err := db.WithContext(ctx).Create(defaultMenu()).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
	}

	settings := NewSettingsRepository(db)
	if _, err := settings.Get(ctx); errors.Is(err, ErrNotFound) {
		s := DefaultSettings()
		if err := settings.Save(ctx, &s); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	} else if err != nil {
		return err
	}

	utils.InfoLogger.Println("Seed data ready.")
	return nil
}
