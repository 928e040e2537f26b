package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hsakai/quizbox/database"
	"github.com/hsakai/quizbox/middleware"
	"github.com/hsakai/quizbox/models"
	"github.com/hsakai/quizbox/services"
)

func ListGenres(c *fiber.Ctx) error {
	var genres []models.Genre
	if err := database.DB.Order("id asc").Find(&genres).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load genres"})
	}
	return c.JSON(genres)
}

// ListUnits returns a genre's units together with each unit's entry
// question id, so the client can link straight to the first post.
// Units without posts have no entry and are not playable.
func ListUnits(c *fiber.Ctx) error {
	genreID, err := c.ParamsInt("genreId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid genre id"})
	}

	var genre models.Genre
	if err := database.DB.First(&genre, genreID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Genre not found"})
	}

	var units []models.Unit
	if err := database.DB.Where("genre_id = ?", genre.ID).Order("id asc").Find(&units).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load units"})
	}

	firstPosts := make(map[uint]uint, len(units))
	for _, unit := range units {
		post, err := quizzes.FirstPost(unit.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load units"})
		}
		if post != nil {
			firstPosts[unit.ID] = post.ID
		}
	}

	return c.JSON(fiber.Map{
		"genre":       genre,
		"units":       units,
		"first_posts": firstPosts,
	})
}

// QuestionResponse deliberately omits the correct answer.
type QuestionResponse struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	Select1  string `json:"select1"`
	Select2  string `json:"select2"`
	Select3  string `json:"select3"`
	Select4  string `json:"select4"`
	UnitID   uint   `json:"unit_id"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

func GetQuestion(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit id"})
	}
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	view, err := quizzes.Question(userID, uint(unitID), uint(postID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load question"})
	}

	return c.JSON(QuestionResponse{
		ID:       view.Post.ID,
		Question: view.Post.Question,
		Select1:  view.Post.Select1,
		Select2:  view.Post.Select2,
		Select3:  view.Post.Select3,
		Select4:  view.Post.Select4,
		UnitID:   view.Post.UnitID,
		Position: view.Position,
		Total:    view.Total,
	})
}

type AnswerRequest struct {
	Selected string `json:"selected" validate:"required"`
}

func SubmitAnswer(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	outcome, err := quizzes.SubmitAnswer(userID, uint(postID), req.Selected)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record answer"})
	}

	resp := fiber.Map{
		"is_correct": outcome.Record.IsCorrect,
		"completed":  outcome.Completed(),
	}
	if outcome.NextPostID != nil {
		resp["next_post_id"] = *outcome.NextPostID
	}
	return c.JSON(resp)
}

func GetResult(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit id"})
	}

	summary, err := results.Finalize(userID, uint(unitID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unit not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build result"})
	}

	resp := fiber.Map{
		"unit":      summary.Unit,
		"correct":   summary.Correct,
		"total":     summary.Total,
		"records":   summary.Records,
		"incorrect": summary.Incorrect,
	}
	if summary.Elapsed != nil {
		resp["elapsed_seconds"] = summary.Elapsed.Seconds()
	}
	return c.JSON(resp)
}

func GetHistory(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessions, err := results.History(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}
	return c.JSON(sessions)
}
