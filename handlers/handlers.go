package handlers

import "github.com/hsakai/quizbox/services"

var (
	accounts *services.AccountService
	quizzes  *services.QuizService
	results  *services.HistoryService
)

// Init wires the service layer. main calls it once after the database
// connection is up.
func Init(a *services.AccountService, q *services.QuizService, h *services.HistoryService) {
	accounts = a
	quizzes = q
	results = h
}
