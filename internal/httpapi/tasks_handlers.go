package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/models"
	"github.com/GogaGogich123/cadet-corps-api/internal/notify"
	"github.com/GogaGogich123/cadet-corps-api/internal/tasks"
)

// listTasks — доска заданий. Кадету каждое задание аннотируется его
// статусом, гостю и админу отдаём просто available. sort=difficulty
// пересортировывает от лёгких к сложным.
func (s *Server) listTasks(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	var list []models.TaskWithStatus
	if cadetID := cadetIDFrom(c); cadetID != "" {
		var err error
		list, err = s.tasks.ListForCadet(ctx, cadetID)
		if err != nil {
			return err
		}
	} else {
		plain, err := db.ListActiveTasks(ctx, s.db)
		if err != nil {
			return err
		}
		list = make([]models.TaskWithStatus, 0, len(plain))
		for _, t := range plain {
			list = append(list, models.TaskWithStatus{Task: t, UserStatus: models.SubmissionAvailable})
		}
	}
	if c.Query("sort") == "difficulty" {
		tasks.SortByDifficulty(list)
	}
	return c.JSON(fiber.Map{"tasks": list})
}

func (s *Server) getTask(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	task, err := db.GetTaskByID(ctx, s.db, c.Params("id"))
	if err != nil {
		return err
	}
	if task == nil {
		return fiber.NewError(fiber.StatusNotFound, "задание не найдено")
	}
	return c.JSON(task)
}

func (s *Server) takeTask(c *fiber.Ctx) error {
	cadetID, err := mustCadet(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	sub, err := s.tasks.Take(ctx, c.Params("id"), cadetID)
	if err != nil {
		return taskError(err)
	}
	s.notify.Add(claimsFrom(c).UID, notify.KindSuccess, "Задание взято в работу", "", 0)
	return c.Status(fiber.StatusCreated).JSON(sub)
}

type submitRequest struct {
	Text string `json:"text"`
}

func (s *Server) submitTask(c *fiber.Ctx) error {
	cadetID, err := mustCadet(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "некорректное тело запроса")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	if err := s.tasks.Submit(ctx, c.Params("id"), cadetID, req.Text); err != nil {
		return taskError(err)
	}
	s.notify.Add(claimsFrom(c).UID, notify.KindSuccess, "Задание отправлено на проверку", "", 0)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) abandonTask(c *fiber.Ctx) error {
	cadetID, err := mustCadet(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.UserContext())
	defer cancel()

	if err := s.tasks.Abandon(ctx, c.Params("id"), cadetID); err != nil {
		return taskError(err)
	}
	s.notify.Add(claimsFrom(c).UID, notify.KindInfo, "Задание возвращено на доску", "", 0)
	return c.SendStatus(fiber.StatusNoContent)
}

// mustCadet — ручки жизненного цикла доступны только кадету с анкетой.
func mustCadet(c *fiber.Ctx) (string, error) {
	cadetID := cadetIDFrom(c)
	if cadetID == "" {
		return "", fiber.NewError(fiber.StatusForbidden, "только для кадета")
	}
	return cadetID, nil
}

// taskError переводит ошибки сервиса заданий в HTTP-коды.
func taskError(err error) error {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, tasks.ErrEmptyText),
		errors.Is(err, tasks.ErrBadDecision),
		errors.Is(err, tasks.ErrPointsRequired):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tasks.ErrTaskInactive),
		errors.Is(err, tasks.ErrAlreadyTaken),
		errors.Is(err, tasks.ErrNotTaken),
		errors.Is(err, tasks.ErrNotSubmitted):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, db.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}
