package httpapi

import (
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/export"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
	"github.com/GogaGogich123/cadet-corps-api/internal/notify"
	"github.com/GogaGogich123/cadet-corps-api/internal/storage"
)

type createTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Points      int       `json:"points"`
	Difficulty  string    `json:"difficulty"`
	Deadline    time.Time `json:"deadline"`
}

func (s *Server) adminCreateTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "нужен заголовок")
	}
	if !models.ScoreCategory(req.Category).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "неизвестная категория")
	}
	if req.Points <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "баллы должны быть положительными")
	}
	difficulty := models.TaskDifficulty(req.Difficulty)
	switch difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "неизвестная сложность")
	}
	if req.Deadline.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "нужен срок выполнения")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	uid := claimsFrom(c).UID
	id, err := db.CreateTask(ctx, s.db, models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    models.ScoreCategory(req.Category),
		Points:      req.Points,
		Difficulty:  difficulty,
		Deadline:    req.Deadline,
		Status:      models.TaskActive,
		CreatedBy:   &uid,
	})
	if err != nil {
		return err
	}
	s.log.Info("создано задание", zap.String("task_id", id), zap.String("by", uid))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// adminListTasks — все задания, включая неактивные: админка правит и те,
// что с доски уже сняты.
func (s *Server) adminListTasks(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	list, err := db.ListAllTasks(ctx, s.db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tasks": list})
}

type patchTaskRequest struct {
	Status string `json:"status"`
}

func (s *Server) adminPatchTask(c *fiber.Ctx) error {
	var req patchTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	status := models.TaskStatus(req.Status)
	if status != models.TaskActive && status != models.TaskInactive {
		return fiber.NewError(fiber.StatusBadRequest, "статус: active или inactive")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	if err := db.SetTaskStatus(ctx, s.db, c.Params("id"), status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "задание не найдено")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) adminListSubmissions(c *fiber.Ctx) error {
	// по умолчанию — очередь на проверку; status=all снимает фильтр
	var status models.SubmissionStatus
	switch q := c.Query("status", string(models.SubmissionSubmitted)); q {
	case "all":
	case string(models.SubmissionTaken), string(models.SubmissionSubmitted),
		string(models.SubmissionCompleted), string(models.SubmissionRejected):
		status = models.SubmissionStatus(q)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "неизвестный статус")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	subs, err := db.ListSubmissionsWithDetails(ctx, s.db, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"submissions": subs})
}

type reviewRequest struct {
	Decision      string  `json:"decision"`
	PointsAwarded *int    `json:"points_awarded,omitempty"`
	Feedback      *string `json:"feedback,omitempty"`
}

func (s *Server) adminReviewSubmission(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	subID := c.Params("id")
	sub, err := db.GetSubmissionByID(ctx, s.db, subID)
	if err != nil {
		return err
	}
	if sub == nil {
		return fiber.NewError(fiber.StatusNotFound, "сдача не найдена")
	}

	decision := models.SubmissionStatus(req.Decision)
	if err := s.tasks.Review(ctx, subID, decision, claimsFrom(c).UID, req.PointsAwarded, req.Feedback); err != nil {
		return taskError(err)
	}

	// уведомляем кадета, если у него есть учётка
	if cadet, err := db.GetCadetByID(ctx, s.db, sub.CadetID); err == nil && cadet != nil && cadet.AuthUserID != nil {
		if decision == models.SubmissionCompleted {
			s.notify.Add(*cadet.AuthUserID, notify.KindSuccess, "Задание принято", "Баллы начислены", 0)
		} else {
			s.notify.Add(*cadet.AuthUserID, notify.KindWarning, "Задание отклонено", "Смотрите комментарий проверяющего", 0)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addScoreRequest struct {
	Category    string `json:"category"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// adminAddScore — прямое начисление или штраф (знак задаёт points).
func (s *Server) adminAddScore(c *fiber.Ctx) error {
	var req addScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if !models.ScoreCategory(req.Category).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "неизвестная категория")
	}
	if req.Points == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "баллы не могут быть нулевыми")
	}
	if strings.TrimSpace(req.Description) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "нужно основание")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	cadetID := c.Params("cadetID")
	cadet, err := db.GetCadetByID(ctx, s.db, cadetID)
	if err != nil {
		return err
	}
	if cadet == nil {
		return fiber.NewError(fiber.StatusNotFound, "кадет не найден")
	}

	uid := claimsFrom(c).UID
	id, err := db.AddScoreEntry(ctx, s.db, models.ScoreHistory{
		CadetID:     cadetID,
		Category:    models.ScoreCategory(req.Category),
		Points:      req.Points,
		Description: strings.TrimSpace(req.Description),
		AwardedBy:   &uid,
	})
	if err != nil {
		return err
	}

	if cadet.AuthUserID != nil {
		title := "Начислены баллы"
		kind := notify.KindSuccess
		if req.Points < 0 {
			title = "Сняты баллы"
			kind = notify.KindWarning
		}
		s.notify.Add(*cadet.AuthUserID, kind, title, req.Description, 0)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (s *Server) adminListHistory(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	var cadetID *string
	if v := c.Query("cadet_id"); v != "" {
		cadetID = &v
	}
	history, err := db.ListScoreHistory(ctx, s.db, cadetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"history": history})
}

func (s *Server) adminListAchievements(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	manual, err := db.ListAchievements(ctx, s.db)
	if err != nil {
		return err
	}
	auto, err := db.ListAutoAchievements(ctx, s.db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"achievements": manual, "auto_achievements": auto})
}

type createAchievementRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (s *Server) adminCreateAchievement(c *fiber.Ctx) error {
	var req createAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "нужен заголовок")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	id, err := db.CreateAchievement(ctx, s.db, models.Achievement{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type awardRequest struct {
	AchievementID string `json:"achievement_id"`
}

func (s *Server) adminAwardAchievement(c *fiber.Ctx) error {
	var req awardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if req.AchievementID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "нужен achievement_id")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	cadetID := c.Params("cadetID")
	cadet, err := db.GetCadetByID(ctx, s.db, cadetID)
	if err != nil {
		return err
	}
	if cadet == nil {
		return fiber.NewError(fiber.StatusNotFound, "кадет не найден")
	}

	uid := claimsFrom(c).UID
	if err := db.AwardAchievement(ctx, s.db, cadetID, req.AchievementID, &uid); err != nil {
		return err
	}
	if cadet.AuthUserID != nil {
		s.notify.Add(*cadet.AuthUserID, notify.KindSuccess, "Вам вручён новый значок!", "Смотрите раздел достижений в профиле", 0)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type createNewsRequest struct {
	Title              string   `json:"title"`
	Content            string   `json:"content"`
	Author             string   `json:"author"`
	IsMain             bool     `json:"is_main"`
	BackgroundImageURL *string  `json:"background_image_url,omitempty"`
	Images             []string `json:"images,omitempty"`
}

func (s *Server) adminCreateNews(c *fiber.Ctx) error {
	var req createNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "нужны заголовок и текст")
	}

	claims := claimsFrom(c)
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = claims.Name
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	id, err := db.CreateNews(ctx, s.db, models.News{
		Title:              strings.TrimSpace(req.Title),
		Content:            req.Content,
		Author:             author,
		IsMain:             req.IsMain,
		BackgroundImageURL: req.BackgroundImageURL,
		Images:             req.Images,
		CreatedBy:          &claims.UID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// adminPatchNews — частичное редактирование новости. Снять флаг главной
// нельзя: он переносится назначением другой новости.
func (s *Server) adminPatchNews(c *fiber.Ctx) error {
	var upd models.NewsUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if upd.IsMain != nil && !*upd.IsMain {
		return fiber.NewError(fiber.StatusBadRequest, "главная снимается назначением другой новости")
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "заголовок не может быть пустым")
	}
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "текст не может быть пустым")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	if err := db.UpdateNews(ctx, s.db, c.Params("id"), upd); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "новость не найдена")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) adminPatchCadet(c *fiber.Ctx) error {
	var upd models.CadetUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}
	if upd.Squad != nil && (*upd.Squad < 1 || *upd.Squad > 3) {
		return fiber.NewError(fiber.StatusBadRequest, "отделение: 1..3")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	if err := db.UpdateCadet(ctx, s.db, c.Params("id"), upd); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "кадет не найден")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// adminUpload — multipart-файл в S3, в ответе публичная ссылка.
// kind задаёт префикс ключа: avatars или news.
func (s *Server) adminUpload(c *fiber.Ctx) error {
	if s.store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "файловое хранилище не настроено")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "нужен файл в поле file")
	}
	kind := c.FormValue("kind", "news")
	if kind != "avatars" && kind != "news" {
		return fiber.NewError(fiber.StatusBadRequest, "kind: avatars или news")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	url, err := s.store.Upload(c.UserContext(), storage.ObjectKey(kind, fh.Filename), data, fh.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func (s *Server) adminExportRating(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithTimeout(c.UserContext(), 30*time.Second)
	defer cancel()

	wb, err := export.BuildRatingWorkbook(ctx, s.db, s.cfg.Location)
	if err != nil {
		return err
	}
	data, err := wb.Bytes()
	if err != nil {
		return err
	}

	name := export.RatingFilename(time.Now(), s.cfg.Location)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="export.xlsx"; filename*=UTF-8''`+url.PathEscape(name))
	return c.Send(data)
}
