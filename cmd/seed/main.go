package main

import (
	"log"
	"os"
	"time"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/mapper"
	"renewal-tracking-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Demo accounts for local development. Password for both is "password123".
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding demo users...")
	adminId := seedUser(db, "admin@example.com", "Admin User", entity.UserRoleAdmin)
	userId := seedUser(db, "user@example.com", "Demo User", entity.UserRoleUser)

	color.Cyan("Seeding demo renewals...")
	seedRenewals(db, adminId, userId)

	color.Green("Done.")
}

func seedUser(db *gorm.DB, email, fullName string, role entity.UserRole) uuid.UUID {
	userMapper := mapper.UserMapper{}

	var count int64
	db.Table("users").Where("email = ?", email).Count(&count)
	if count > 0 {
		color.Yellow("  %s already exists, skipping", email)
		var id string
		db.Table("users").Where("email = ?", email).Pluck("id", &id)
		parsed, _ := uuid.Parse(id)
		return parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("  bcrypt failed: %v", err)
		os.Exit(1)
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: &hashStr,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(userMapper.ToModel(user)).Error; err != nil {
		color.Red("  Failed to create %s: %v", email, err)
		os.Exit(1)
	}

	color.Green("  Created %s (%s)", email, role)
	return user.Id
}

func seedRenewals(db *gorm.DB, adminId, userId uuid.UUID) {
	renewalMapper := mapper.RenewalMapper{}

	email := entity.ReminderEmail
	both := entity.ReminderBoth
	notification := entity.ReminderNotification

	fixtures := []*entity.Renewal{
		{OwnerId: userId.String(), Name: "example.com", Kind: entity.KindDomain, Provider: "GoDaddy",
			StartDate: "2024-05-10", EndDate: "2025-05-10", Cost: 12.99, Status: entity.StatusActive,
			ReminderChannel: &email, Notes: "Primary website domain"},
		{OwnerId: userId.String(), Name: "Norton 360", Kind: entity.KindAntivirus, Provider: "Norton",
			StartDate: "2024-02-15", EndDate: "2025-02-15", Cost: 89.99, Status: entity.StatusActive,
			ReminderChannel: &both},
		{OwnerId: userId.String(), Name: "MyApp Hosting", Kind: entity.KindHosting, Provider: "AWS",
			StartDate: "2024-03-01", EndDate: "2025-05-20", Cost: 29.99, Status: entity.StatusExpiringSoon,
			ReminderChannel: &notification, Notes: "Company website hosting"},
		{OwnerId: adminId.String(), Name: "Office 365", Kind: entity.KindSoftware, Provider: "Microsoft",
			StartDate: "2024-01-01", EndDate: "2025-01-01", Cost: 99.99, Status: entity.StatusActive,
			ReminderChannel: &email},
		{OwnerId: adminId.String(), Name: "company.org", Kind: entity.KindDomain, Provider: "Namecheap",
			StartDate: "2023-11-15", EndDate: "2024-11-15", Cost: 15.99, Status: entity.StatusActive,
			ReminderChannel: &both},
		{OwnerId: userId.String(), Name: "Adobe Creative Cloud", Kind: entity.KindSoftware, Provider: "Adobe",
			StartDate: "2024-06-01", EndDate: "2024-04-30", Cost: 52.99, Status: entity.StatusExpired,
			ReminderChannel: &notification, Notes: "Need to renew ASAP"},
	}

	for _, rec := range fixtures {
		rec.Id = uuid.New().String()

		var count int64
		db.Table("renewals").Where("user_id = ? AND name = ?", rec.OwnerId, rec.Name).Count(&count)
		if count > 0 {
			color.Yellow("  %s already exists, skipping", rec.Name)
			continue
		}

		if err := db.Create(renewalMapper.ToModel(rec)).Error; err != nil {
			color.Red("  Failed to create %s: %v", rec.Name, err)
			continue
		}
		color.Green("  Created %s", rec.Name)
	}
}
