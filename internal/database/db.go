package database

import (
	"log"

	"github.com/rywndr/riaujaya-sub000/internal/config"
	"github.com/rywndr/riaujaya-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa konek ke database: %v", err)
	}

	// Pool koneksi dibatasi. Satu request transaksional memegang satu
	// koneksi sampai commit/rollback; sisanya antre di pool.
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Tidak bisa ambil sql.DB dari gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate gagal: %v", err)
	}

	log.Println("Koneksi database berhasil. Migration selesai.")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Cashier{},
		&models.Product{},
		&models.Customer{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.AuditLog{},
	)
}
