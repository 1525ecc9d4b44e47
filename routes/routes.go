package routes

import (
	"colorbet/controllers/admin"
	"colorbet/controllers/game"
	"colorbet/controllers/wallet"
	"colorbet/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	gameroutes := app.Group("/game")
	gameroutes.Get("/current", game.CurrentRound)
	gameroutes.Get("/results", game.Results)
	gameroutes.Post("/bet", middlewares.UserAuthMiddleware, game.PlaceBet)
	gameroutes.Get("/history", middlewares.UserAuthMiddleware, game.BetHistory)

	walletroutes := app.Group("/wallet", middlewares.UserAuthMiddleware)
	walletroutes.Get("/balance", wallet.Balance)
	walletroutes.Post("/deposit", wallet.Deposit)
	walletroutes.Post("/deposit/verify", wallet.VerifyDeposit)
	walletroutes.Post("/deposit/fail", wallet.FailDeposit)
	walletroutes.Post("/withdraw", wallet.Withdraw)
	walletroutes.Get("/transactions", wallet.Transactions)

	adminroutes := app.Group("/admin", middlewares.AdminAuth())
	adminroutes.Post("/round/settle", admin.SettleRound)
	adminroutes.Get("/withdrawals", admin.PendingWithdrawals)
	adminroutes.Put("/withdrawals/:id", admin.ProcessWithdrawal)
	adminroutes.Get("/stats", admin.Stats)
	adminroutes.Get("/rounds", admin.ListRounds)
	adminroutes.Get("/users", admin.ListUsers)
	adminroutes.Put("/users/:id/status", admin.SetUserStatus)
}
