package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hsakai/quizbox/handlers"
	"github.com/hsakai/quizbox/middleware"
	"github.com/hsakai/quizbox/models"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quiz := api.Group("/quiz",
		middleware.Protected(),
		middleware.RolesRequired(models.RoleAdmin, models.RolePlayer),
	)
	quiz.Get("/genres", handlers.ListGenres)
	quiz.Get("/genres/:genreId/units", handlers.ListUnits)
	quiz.Get("/units/:unitId/questions/:postId", handlers.GetQuestion)
	quiz.Post("/questions/:postId/answer", handlers.SubmitAnswer)
	quiz.Get("/units/:unitId/result", handlers.GetResult)
	quiz.Get("/history", handlers.GetHistory)
}
