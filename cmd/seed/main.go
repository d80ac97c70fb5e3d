package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"reviewtrust/internal/database"
	"reviewtrust/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "reviewtrust.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Business{},
		&domain.Category{},
		&domain.Subcategory{},
		&domain.Review{},
		&domain.BusinessImage{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM business_images")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM business_subcategories")
	db.Exec("DELETE FROM business_categories")
	db.Exec("DELETE FROM subcategories")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM businesses")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@reviewtrust.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Platform Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@reviewtrust.io / admin123")

	reviewers := []domain.User{}
	reviewerEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com", "dave@example.com"}
	for i, email := range reviewerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			Name:         fmt.Sprintf("Reviewer %d", i+1),
		}
		db.Create(&u)
		reviewers = append(reviewers, u)
	}

	owners := []domain.User{}
	ownerEmails := []string{"owner@sunrisecafe.com", "owner@quickfix.com", "owner@glowsalon.com"}
	for i, email := range ownerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleBusiness,
			Name:         fmt.Sprintf("Owner %d", i+1),
		}
		db.Create(&u)
		owners = append(owners, u)
	}

	// ================== CATEGORIES ==================
	log.Println("Creating categories...")
	catNames := []struct {
		name, icon, bg string
		subs           []string
	}{
		{"Food & Drink", "utensils", "#FDE68A", []string{"Cafe", "Restaurant", "Bakery"}},
		{"Home Services", "wrench", "#BFDBFE", []string{"Plumbing", "Electrical", "Cleaning"}},
		{"Beauty", "sparkles", "#FBCFE8", []string{"Hair Salon", "Nails", "Spa"}},
	}

	categories := make([]domain.Category, 0, len(catNames))
	subsByCategory := map[int64][]domain.Subcategory{}
	for _, c := range catNames {
		cat := domain.Category{Name: c.name, Icon: c.icon, BgColor: c.bg}
		db.Create(&cat)
		categories = append(categories, cat)
		for _, s := range c.subs {
			sub := domain.Subcategory{CategoryID: cat.ID, Name: s}
			db.Create(&sub)
			subsByCategory[cat.ID] = append(subsByCategory[cat.ID], sub)
		}
	}

	// ================== BUSINESSES ==================
	log.Println("Creating businesses...")
	seedBusinesses := []struct {
		name, location, description string
		catIdx                      int
	}{
		{"Sunrise Cafe", "Portland, OR", "Neighborhood cafe with house-roasted beans", 0},
		{"QuickFix Plumbing", "Austin, TX", "Same-day residential plumbing repairs", 1},
		{"Glow Salon", "Denver, CO", "Hair and nail studio downtown", 2},
		{"Bread & Butter Bakery", "Portland, OR", "Sourdough and pastries baked daily", 0},
		{"Sparkle Cleaning", "Austin, TX", "Weekly and move-out home cleaning", 1},
	}

	businesses := make([]domain.Business, 0, len(seedBusinesses))
	for i, sb := range seedBusinesses {
		owner := owners[i%len(owners)]
		cat := categories[sb.catIdx]
		b := domain.Business{
			OwnerID:       owner.ID,
			Name:          sb.name,
			Location:      sb.location,
			Description:   sb.description,
			Phone:         fmt.Sprintf("+1 555 010 %04d", 1000+i),
			BusinessHours: "Mon-Sat 9:00-18:00",
		}
		db.Create(&b)
		db.Model(&b).Association("Categories").Append(&cat)
		if subs := subsByCategory[cat.ID]; len(subs) > 0 {
			db.Model(&b).Association("Subcategories").Append(&subs[i%len(subs)])
		}
		businesses = append(businesses, b)
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")
	comments := []string{
		"Great service, would come back.",
		"Good overall but a bit slow.",
		"Exceeded expectations.",
		"Average experience.",
		"Friendly staff and fair prices.",
	}
	for _, b := range businesses {
		for j, reviewer := range reviewers {
			// leave some businesses with fewer reviews
			if (int(b.ID)+j)%3 == 0 {
				continue
			}
			rv := domain.Review{
				RevieweeID: b.ID,
				ReviewerID: reviewer.ID,
				Rating:     3 + rand.Intn(3),
				Comment:    comments[rand.Intn(len(comments))],
				IsVerified: j%2 == 0,
				CreatedAt:  time.Now().AddDate(0, 0, -rand.Intn(30)),
			}
			db.Create(&rv)
		}
	}

	// ================== IMAGES ==================
	log.Println("Creating images...")
	for i, b := range businesses {
		img := domain.BusinessImage{
			BusinessID: b.ID,
			ImageURL:   fmt.Sprintf("/static/uploads/seed/business-%d.jpg", i+1),
			FilePath:   fmt.Sprintf("seed/business-%d.jpg", i+1),
			IsPrimary:  true,
		}
		db.Create(&img)
	}

	log.Println("Seed complete.")
}
