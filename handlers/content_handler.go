package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hsakai/quizbox/database"
	"github.com/hsakai/quizbox/models"
	"github.com/hsakai/quizbox/services"
	"gorm.io/gorm"
)

type GenreRequest struct {
	Name string `json:"name" validate:"required,max=15"`
}

type UnitRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type PostRequest struct {
	Question string `json:"question" validate:"required,max=100"`
	Select1  string `json:"select1" validate:"required,max=40"`
	Select2  string `json:"select2" validate:"required,max=40"`
	Select3  string `json:"select3" validate:"required,max=40"`
	Select4  string `json:"select4" validate:"required,max=40"`
	Answer   string `json:"answer" validate:"required,max=40"`
}

func (r PostRequest) answerInOptions() bool {
	return r.Answer == r.Select1 || r.Answer == r.Select2 ||
		r.Answer == r.Select3 || r.Answer == r.Select4
}

func AdminListGenres(c *fiber.Ctx) error {
	var genres []models.Genre
	if err := database.DB.Order("id asc").Find(&genres).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load genres"})
	}
	return c.JSON(genres)
}

func AdminCreateGenre(c *fiber.Ctx) error {
	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	if err := database.DB.Model(&models.Genre{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create genre"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Genre name already exists"})
	}

	genre := models.Genre{Name: req.Name}
	if err := database.DB.Create(&genre).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create genre"})
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

func AdminRenameGenre(c *fiber.Ctx) error {
	genreID, err := c.ParamsInt("genreId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid genre id"})
	}

	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var genre models.Genre
	if err := database.DB.First(&genre, genreID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Genre not found"})
	}

	var count int64
	if err := database.DB.Model(&models.Genre{}).
		Where("name = ? AND id <> ?", req.Name, genre.ID).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rename genre"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Genre name already exists"})
	}

	genre.Name = req.Name
	if err := database.DB.Save(&genre).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rename genre"})
	}
	return c.JSON(genre)
}

// AdminDeleteGenre removes a genre with its units and their posts in
// one transaction. Cascades are explicit: the schema carries no
// foreign-key constraints.
func AdminDeleteGenre(c *fiber.Ctx) error {
	genreID, err := c.ParamsInt("genreId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid genre id"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.First(&genre, genreID).Error; err != nil {
			return services.ErrNotFound
		}

		var unitIDs []uint
		if err := tx.Model(&models.Unit{}).Where("genre_id = ?", genre.ID).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("unit_id IN ?", unitIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
			if err := tx.Where("genre_id = ?", genre.ID).Delete(&models.Unit{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&genre).Error
	})
	if err != nil {
		if err == services.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Genre not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete genre"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AdminListUnits(c *fiber.Ctx) error {
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
	return c.JSON(units)
}

func AdminCreateUnit(c *fiber.Ctx) error {
	genreID, err := c.ParamsInt("genreId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid genre id"})
	}

	var req UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var genre models.Genre
	if err := database.DB.First(&genre, genreID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Genre not found"})
	}

	unit := models.Unit{Name: req.Name, GenreID: genre.ID}
	if err := database.DB.Create(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create unit"})
	}
	return c.Status(fiber.StatusCreated).JSON(unit)
}

func AdminRenameUnit(c *fiber.Ctx) error {
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit id"})
	}

	var req UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var unit models.Unit
	if err := database.DB.First(&unit, unitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unit not found"})
	}

	unit.Name = req.Name
	if err := database.DB.Save(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rename unit"})
	}
	return c.JSON(unit)
}

// AdminDeleteUnit removes a unit and its posts; a post cannot outlive
// its unit.
func AdminDeleteUnit(c *fiber.Ctx) error {
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit id"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, unitID).Error; err != nil {
			return services.ErrNotFound
		}
		if err := tx.Where("unit_id = ?", unit.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&unit).Error
	})
	if err != nil {
		if err == services.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unit not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete unit"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AdminListPosts(c *fiber.Ctx) error {
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit id"})
	}

	var unit models.Unit
	if err := database.DB.First(&unit, unitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unit not found"})
	}

	var posts []models.Post
	if err := database.DB.Where("unit_id = ?", unit.ID).Order("id asc").Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load posts"})
	}
	return c.JSON(posts)
}

func AdminGetPost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	return c.JSON(post)
}

func AdminCreatePost(c *fiber.Ctx) error {
	unitID, err := c.ParamsInt("unitId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit id"})
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !req.answerInOptions() {
		// Echo the submitted fields so the form can be re-displayed.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  services.ErrAnswerNotInOptions.Error(),
			"fields": req,
		})
	}

	var unit models.Unit
	if err := database.DB.First(&unit, unitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unit not found"})
	}

	post := models.Post{
		Question:  req.Question,
		Select1:   req.Select1,
		Select2:   req.Select2,
		Select3:   req.Select3,
		Select4:   req.Select4,
		Answer:    req.Answer,
		CreatedAt: time.Now().UTC(),
		UnitID:    unit.ID,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func AdminUpdatePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !req.answerInOptions() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  services.ErrAnswerNotInOptions.Error(),
			"fields": req,
		})
	}

	post.Question = req.Question
	post.Select1 = req.Select1
	post.Select2 = req.Select2
	post.Select3 = req.Select3
	post.Select4 = req.Select4
	post.Answer = req.Answer
	if err := database.DB.Save(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update post"})
	}
	return c.JSON(post)
}

func AdminDeletePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	result := database.DB.Delete(&models.Post{}, postID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete post"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
