package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_pms")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}
	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Role{},
		&models.RolePermission{},
		&models.Staff{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.GroupBooking{},
		&models.Reservation{},
		&models.Bill{},
		&models.Payment{},
		&models.ActivityLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures baseline inventory, roles and a default manager exist.
// Safe to run on every start.
func SeedDatabase() {
	// ---------------- RoomTypes ----------------
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room", BasePrice: 50, ExtraBedCharge: 10, AdultCapacity: 2, ChildCapacity: 1},
			{Name: "Superior", Description: "Superior Room", BasePrice: 75, ExtraBedCharge: 12, AdultCapacity: 3, ChildCapacity: 1},
			{Name: "Deluxe", Description: "Deluxe Room", BasePrice: 100, ExtraBedCharge: 15, AdultCapacity: 4, ChildCapacity: 2},
		}
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
		} else {
			log.Println("Room types seeded")
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var types []models.RoomType
		if err := DB.Order("base_price ASC").Find(&types).Error; err == nil && len(types) > 0 {
			var rooms []models.Room
			for i, rt := range types {
				floor := i + 1
				for n := 1; n <= 4; n++ {
					rooms = append(rooms, models.Room{
						RoomTypeID: rt.ID,
						RoomNumber: fmt.Sprintf("%d0%d", floor, n),
						Floor:      strconv.Itoa(floor),
						Status:     models.RoomAvailable,
						Active:     true,
					})
				}
			}
			if err := DB.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed rooms: %v", err)
			} else {
				log.Println("Rooms seeded")
			}
		}
	}

	// ---------------- Roles & permissions ----------------
	desiredRoles := []models.Role{
		{Name: "owner", Description: "System owner with full access"},
		{Name: "Manager", Description: "Manager with elevated access"},
		{Name: "Receptionist", Description: "Front desk operations"},
	}

	allPerms := []string{
		"reservationManagement.view",
		"reservationManagement.create",
		"reservationManagement.confirm",
		"reservationManagement.checkIn",
		"reservationManagement.changeRoom",
		"reservationManagement.checkOut",
		"reservationManagement.cancel",
		"reservationManagement.noShow",
		"paymentManagement.view",
		"paymentManagement.record",
		"paymentManagement.refund",
		"groupBooking.view",
		"groupBooking.create",
		"roomManagement.view",
		"roomManagement.create",
		"roomManagement.editStatus",
	}

	rolesByKey := map[string]models.Role{}
	for i := range desiredRoles {
		role := desiredRoles[i]
		key := strings.ToLower(role.Name)

		var existing models.Role
		err := DB.Where("LOWER(name) = ?", key).First(&existing).Error
		if err == nil && existing.ID != 0 {
			rolesByKey[key] = existing
			continue
		}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to create role %s: %v", role.Name, err)
			continue
		}
		rolesByKey[key] = role
	}

	for _, key := range []string{"owner", "manager"} {
		role, ok := rolesByKey[key]
		if !ok || role.ID == 0 {
			continue
		}
		var permCount int64
		DB.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&permCount)
		if permCount == 0 {
			perms := make([]models.RolePermission, 0, len(allPerms))
			for _, p := range allPerms {
				perms = append(perms, models.RolePermission{RoleID: role.ID, Permission: p})
			}
			if err := DB.Create(&perms).Error; err != nil {
				log.Printf("warning: failed to create %s permissions: %v", key, err)
			}
		}
	}

	// ---------------- Default manager ----------------
	var staffCount int64
	DB.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		manager, ok := rolesByKey["manager"]
		if ok && manager.ID != 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_MANAGER_PASSWORD", "manager123")), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("warning: failed to hash default manager password: %v", err)
			} else {
				staff := models.Staff{
					FullName: "Front Desk Manager",
					Username: "manager@hotel.local",
					Password: string(hash),
					RoleID:   manager.ID,
				}
				if err := DB.Create(&staff).Error; err != nil {
					log.Printf("warning: failed to create default manager: %v", err)
				} else {
					log.Println("Default manager seeded")
				}
			}
		}
	}

	log.Println("Seed data ensured")
}
