package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin account and sample Power BI reports for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_report_access", "reports", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(user.DefaultTemporaryPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		adminEmail := "admin@dotlabs.com"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err == nil {
			fmt.Println("admin user already exists:", adminEmail)
		} else {
			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, is_password_changed, designation, role, status, created_at, updated_at) VALUES (?, ?, ?, false, ?, 'Admin', 'active', now(), now())",
				"Portal Admin", adminEmail, string(hash), "Administrator",
			).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
			fmt.Println("Temporary password:", user.DefaultTemporaryPassword)
		}

		reports := []struct {
			Title     string
			PowerBIID string
			EmbedURL  string
			Type      string
		}{
			{"Monthly P&L", "pl-monthly-001", "https://app.powerbi.com/reportEmbed?reportId=pl-monthly-001", "Accounting"},
			{"Accounts Receivable Aging", "ar-aging-001", "https://app.powerbi.com/reportEmbed?reportId=ar-aging-001", "Accounting"},
			{"Production Throughput", "prod-tp-001", "https://app.powerbi.com/reportEmbed?reportId=prod-tp-001", "Manufacturing"},
			{"Scrap Rate Overview", "scrap-001", "https://app.powerbi.com/reportEmbed?reportId=scrap-001", "Manufacturing"},
		}

		for _, r := range reports {
			var exists int
			if err := db.Raw("SELECT 1 FROM reports WHERE power_bi_report_id = ?", r.PowerBIID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO reports (title, power_bi_report_id, power_bi_embed_url, type, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				r.Title, r.PowerBIID, r.EmbedURL, r.Type,
			).Error; err != nil {
				log.Fatalf("failed to insert report %s: %v", r.Title, err)
			}
			fmt.Println("Seeded report:", r.Title)
		}

		fmt.Println("Seeding complete")
	},
}
