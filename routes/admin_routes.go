package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hsakai/quizbox/handlers"
	"github.com/hsakai/quizbox/middleware"
	"github.com/hsakai/quizbox/models"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin",
		middleware.Protected(),
		middleware.RolesRequired(models.RoleAdmin),
	)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/role", handlers.UpdateUserRole)
	users.Delete("/:userId", handlers.AdminDeleteUser)

	genres := admin.Group("/genres")
	genres.Get("", handlers.AdminListGenres)
	genres.Post("", handlers.AdminCreateGenre)
	genres.Put("/:genreId", handlers.AdminRenameGenre)
	genres.Delete("/:genreId", handlers.AdminDeleteGenre)
	genres.Get("/:genreId/units", handlers.AdminListUnits)
	genres.Post("/:genreId/units", handlers.AdminCreateUnit)

	units := admin.Group("/units")
	units.Put("/:unitId", handlers.AdminRenameUnit)
	units.Delete("/:unitId", handlers.AdminDeleteUnit)
	units.Get("/:unitId/posts", handlers.AdminListPosts)
	units.Post("/:unitId/posts", handlers.AdminCreatePost)

	posts := admin.Group("/posts")
	posts.Get("/:postId", handlers.AdminGetPost)
	posts.Put("/:postId", handlers.AdminUpdatePost)
	posts.Delete("/:postId", handlers.AdminDeletePost)
}
