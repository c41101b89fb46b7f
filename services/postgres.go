package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alpenrent/alpenrent_api/model"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrReservationOverlap is returned when the insert guard (or the
// storage-level exclusion constraint) detects a conflicting confirmed
// reservation for the same car and interval.
var ErrReservationOverlap = errors.New("reservation overlaps an existing confirmed reservation")

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "alpenrent_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.Car{},
		&model.Reservation{},
		&model.Extra{},
		&model.Promotion{},
		&model.SiteSetting{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	if err := ds.ensureOverlapConstraint(); err != nil {
		log.Printf("Failed to ensure reservation overlap constraint: %v", err)
		return err
	}

	ticker := time.NewTicker(time.Hour)
	go func() {
		for range ticker.C {
			count, err := ds.CompleteElapsedReservations(time.Now())
			if err != nil {
				log.Printf("Failed to complete elapsed reservations: %v", err)
			} else if count > 0 {
				log.Printf("Marked %d reservations as completed", count)
			}
		}
	}()

	log.Println("Database connected and migrated successfully")
	return nil
}

// ensureOverlapConstraint installs a storage-level exclusion constraint
// so two confirmed reservations for one car can never hold overlapping
// intervals, regardless of application-level timing. The application
// check remains as the early, user-friendly rejection.
func (ds *PostgresService) ensureOverlapConstraint() error {
	var exists bool
	err := ds.db.Raw(`
		SELECT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
		)`).Scan(&exists).Error
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := ds.db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return ds.db.Exec(`
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			car_id WITH =,
			daterange(pickup_date::date, dropoff_date::date, '[]') WITH &&
		) WHERE (status = 'confirmed')`).Error
}

// ==================== CARS ====================

func (ds *PostgresService) CreateCar(car *model.Car) error {
	return ds.db.Create(car).Error
}

func (ds *PostgresService) SaveCar(car *model.Car) error {
	return ds.db.Save(car).Error
}

func (ds *PostgresService) DeleteCar(id string) error {
	return ds.db.Delete(&model.Car{}, "id = ?", id).Error
}

func (ds *PostgresService) GetCar(id string) (*model.Car, error) {
	var car model.Car
	if err := ds.db.First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (ds *PostgresService) ListCars() ([]model.Car, error) {
	var cars []model.Car
	err := ds.db.Order("name asc").Find(&cars).Error
	return cars, err
}

func (ds *PostgresService) ListRentableCars() ([]model.Car, error) {
	var cars []model.Car
	err := ds.db.Where("rentable = ?", true).Order("name asc").Find(&cars).Error
	return cars, err
}

// ==================== RESERVATIONS ====================

// FindReservationsForCar returns every reservation for a car whose
// stored interval intersects [pickupDate, dropoffDate] (inclusive
// calendar dates), regardless of status. Status filtering is the
// availability resolver's concern.
func (ds *PostgresService) FindReservationsForCar(carID string, pickupDate, dropoffDate time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := ds.db.
		Where("car_id = ? AND pickup_date <= ? AND dropoff_date >= ?", carID, dropoffDate, pickupDate).
		Find(&reservations).Error
	return reservations, err
}

// CreateReservationGuarded re-runs the confirmed-overlap check inside
// the insert transaction (locking the competing rows) and relies on the
// exclusion constraint as the final authority. Returns
// ErrReservationOverlap when the car is taken.
func (ds *PostgresService) CreateReservationGuarded(res *model.Reservation) error {
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		var existing []model.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("car_id = ? AND status = ? AND pickup_date <= ? AND dropoff_date >= ?",
				res.CarID, model.ReservationConfirmed, res.DropoffDate, res.PickupDate).
			Find(&existing).Error
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrReservationOverlap
		}

		return tx.Create(res).Error
	})

	if err != nil && strings.Contains(err.Error(), "reservations_no_overlap") {
		return ErrReservationOverlap
	}
	return err
}

func (ds *PostgresService) GetReservation(id string) (*model.Reservation, error) {
	var res model.Reservation
	if err := ds.db.First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (ds *PostgresService) ListReservations(status string, page, limit int) ([]model.Reservation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := ds.db.Model(&model.Reservation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []model.Reservation
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reservations).Error
	return reservations, total, err
}

func (ds *PostgresService) UpdateReservationStatus(id, status string) error {
	return ds.db.Model(&model.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

// CompleteElapsedReservations transitions confirmed reservations whose
// dropoff date has passed to completed.
func (ds *PostgresService) CompleteElapsedReservations(now time.Time) (int64, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	result := ds.db.Model(&model.Reservation{}).
		Where("status = ? AND dropoff_date < ?", model.ReservationConfirmed, today).
		Updates(map[string]interface{}{"status": model.ReservationCompleted, "updated_at": now})
	return result.RowsAffected, result.Error
}

// ==================== EXTRAS ====================

func (ds *PostgresService) CreateExtra(extra *model.Extra) error {
	return ds.db.Create(extra).Error
}

func (ds *PostgresService) SaveExtra(extra *model.Extra) error {
	return ds.db.Save(extra).Error
}

func (ds *PostgresService) DeleteExtra(id string) error {
	return ds.db.Delete(&model.Extra{}, "id = ?", id).Error
}

func (ds *PostgresService) ListExtras() ([]model.Extra, error) {
	var extras []model.Extra
	err := ds.db.Order("label asc").Find(&extras).Error
	return extras, err
}

func (ds *PostgresService) ListActiveExtras() ([]model.Extra, error) {
	var extras []model.Extra
	err := ds.db.Where("active = ?", true).Order("label asc").Find(&extras).Error
	return extras, err
}

func (ds *PostgresService) GetExtrasByIDs(ids []string) ([]model.Extra, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var extras []model.Extra
	err := ds.db.Where("id IN ? AND active = ?", ids, true).Find(&extras).Error
	return extras, err
}

// ==================== PROMOTIONS ====================

func (ds *PostgresService) CreatePromotion(promo *model.Promotion) error {
	return ds.db.Create(promo).Error
}

func (ds *PostgresService) SavePromotion(promo *model.Promotion) error {
	return ds.db.Save(promo).Error
}

func (ds *PostgresService) DeletePromotion(id string) error {
	return ds.db.Delete(&model.Promotion{}, "id = ?", id).Error
}

func (ds *PostgresService) GetPromotionByCode(code string) (*model.Promotion, error) {
	var promo model.Promotion
	if err := ds.db.First(&promo, "code = ?", strings.ToUpper(strings.TrimSpace(code))).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (ds *PostgresService) ListPromotions() ([]model.Promotion, error) {
	var promos []model.Promotion
	err := ds.db.Order("created_at desc").Find(&promos).Error
	return promos, err
}

// ==================== SETTINGS ====================

func (ds *PostgresService) GetSetting(key string) (string, error) {
	var setting model.SiteSetting
	err := ds.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (ds *PostgresService) SaveSetting(key, value string) error {
	setting := model.SiteSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
