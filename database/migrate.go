package database

import (
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
	"gorm.io/gorm"
)

// Models lists every table the application owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.Payment{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.StoreSettings{},
	}
}

// Migrate creates or updates the schema and checks the indexes that carry
// booking rules.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	checks := []struct {
		model interface{}
		index string
	}{
		{&models.Reservation{}, "SlotKey"},
		{&models.Payment{}, "ReservationID"},
		{&models.User{}, "Email"},
	}
	for _, chk := range checks {
		if !db.Migrator().HasIndex(chk.model, chk.index) {
			if err := db.Migrator().CreateIndex(chk.model, chk.index); err != nil {
				utils.ErrorLogger.WithError(err).WithField("index", chk.index).Error("failed to create index")
				return err
			}
		}
		utils.InfoLogger.WithField("index", chk.index).Debug("index verified")
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
