package config

import (
	"log"

	"github.com/glebarez/sqlite"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pizza-club-api/models"
)

// Settings holds everything the server reads from the environment. The slot
// roster is configuration, not code: different provisioning eras of the club
// used different windows (17:15–19:30 vs 17:00–21:00).
type Settings struct {
	Port      string `envconfig:"PORT" default:"8080"`
	DBPath    string `envconfig:"DB_PATH" default:"pizza_club.db"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"pizza_club_super_secret_2025"`

	// Bootstrap admin account, created on first start if missing.
	AdminFirstName string `envconfig:"ADMIN_FIRST_NAME" default:"Club"`
	AdminLastName  string `envconfig:"ADMIN_LAST_NAME" default:"Admin"`
	AdminPassword  string `envconfig:"ADMIN_PASSWORD" default:"pizzanight"`

	// Slot roster window: first/last start time and step in minutes.
	SlotFirst   string `envconfig:"SLOT_FIRST" default:"17:15"`
	SlotLast    string `envconfig:"SLOT_LAST" default:"19:30"`
	SlotStepMin int    `envconfig:"SLOT_STEP_MIN" default:"15"`
}

var (
	App       Settings
	DB        *gorm.DB
	JWTSecret []byte
)

func Load() error {
	if err := envconfig.Process("", &App); err != nil {
		return err
	}
	JWTSecret = []byte(App.JWTSecret)
	return nil
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(App.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	bootstrapAdmin(DB)

	log.Println("✅ Database connected and migrated successfully")
}

// Migrate runs the schema migration; tests use it against :memory: databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Member{},
		&models.Pizza{},
		&models.Night{},
		&models.TimeSlot{},
		&models.SlotLock{},
		&models.Order{},
	)
}

// bootstrapAdmin creates the configured admin member if no admin exists yet,
// so a fresh database is immediately operable.
func bootstrapAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.Member{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(App.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash bootstrap admin password:", err)
	}
	admin := models.Member{
		FirstName:    App.AdminFirstName,
		LastName:     App.AdminLastName,
		Username:     models.DeriveUsername(App.AdminFirstName, App.AdminLastName),
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create bootstrap admin:", err)
	}
	log.Printf("👤 Bootstrap admin %q created", admin.Username)
}
