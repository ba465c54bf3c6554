package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/GogaGogich123/cadet-corps-api/internal/models"
)

// SeedAdmin создаёт учётку администратора из ADMIN_EMAIL/ADMIN_PASSWORD,
// если её ещё нет.
func SeedAdmin(ctx context.Context, database *sql.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD не заданы, пропускаем создание админа")
		return nil
	}

	existing, err := GetUserByEmail(ctx, database, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := CreateUser(ctx, database, email, string(hash), models.RoleAdmin, "Администратор"); err != nil {
		return fmt.Errorf("создание админа: %w", err)
	}
	log.Println("✅ Админ создан:", email)
	return nil
}

// SeedAutoAchievements — базовый набор правил автозначков, если таблица пустая.
func SeedAutoAchievements(ctx context.Context, database *sql.DB) error {
	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM auto_achievements`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	study := string(models.CategoryStudy)
	discipline := string(models.CategoryDiscipline)
	events := string(models.CategoryEvents)

	rules := []models.AutoAchievement{
		{Title: "Первые сто", Description: "Набрать 100 баллов суммарно", RequirementType: models.RequirementTotalScore, RequirementValue: 100},
		{Title: "Отличник", Description: "Набрать 90 баллов за учёбу", RequirementType: models.RequirementCategoryScore, RequirementValue: 90, RequirementCategory: &study},
		{Title: "Образцовый строй", Description: "Набрать 90 баллов за дисциплину", RequirementType: models.RequirementCategoryScore, RequirementValue: 90, RequirementCategory: &discipline},
		{Title: "Душа роты", Description: "Набрать 90 баллов за мероприятия", RequirementType: models.RequirementCategoryScore, RequirementValue: 90, RequirementCategory: &events},
		{Title: "Исполнитель", Description: "Выполнить 5 заданий", RequirementType: models.RequirementTasksDone, RequirementValue: 5},
	}
	for _, r := range rules {
		if _, err := database.ExecContext(ctx, `
INSERT INTO auto_achievements (title, description, requirement_type, requirement_value, requirement_category)
VALUES ($1, $2, $3, $4, $5)`, r.Title, r.Description, r.RequirementType, r.RequirementValue, r.RequirementCategory); err != nil {
			return fmt.Errorf("insert auto_achievement %q: %w", r.Title, err)
		}
	}
	log.Println("✅ Правила автозначков добавлены.")
	return nil
}

// SeedDemoCadets наполняет пустую базу тестовыми кадетами (SEED_DEMO=1).
func SeedDemoCadets(ctx context.Context, database *sql.DB) error {
	if os.Getenv("SEED_DEMO") != "1" {
		return nil
	}
	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM cadets`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("🧪 Наполнение базы тестовыми кадетами...")

	demo := []struct {
		name    string
		email   string
		platoon string
		squad   int
	}{
		{"Иванов Александр Дмитриевич", "ivanov@nkkk.ru", "10-1", 1},
		{"Петров Михаил Андреевич", "petrov@nkkk.ru", "10-1", 2},
		{"Сидоров Дмитрий Владимирович", "sidorov@nkkk.ru", "9-2", 1},
		{"Козлов Артём Сергеевич", "kozlov@nkkk.ru", "11-1", 3},
		{"Морозов Владислав Игоревич", "morozov@nkkk.ru", "8-1", 2},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("cadet123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, d := range demo {
		userID, err := CreateUser(ctx, database, d.email, string(hash), models.RoleCadet, d.name)
		if err != nil {
			return fmt.Errorf("❌ ошибка при вставке пользователя %s: %w", d.name, err)
		}
		if _, err := CreateCadet(ctx, database, models.Cadet{
			AuthUserID: &userID,
			Name:       d.name,
			Email:      d.email,
			Platoon:    d.platoon,
			Squad:      d.squad,
		}); err != nil {
			return fmt.Errorf("❌ ошибка при вставке кадета %s: %w", d.name, err)
		}
	}

	log.Println("✅ Кадеты успешно добавлены.")
	return nil
}
