package controller

import (
	"errors"

	"github.com/benbeisheim/chesssage-backend/internal/model"
	"github.com/benbeisheim/chesssage-backend/internal/service"
	"github.com/benbeisheim/chesssage-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{gameService: gameService, logger: logger}
}

// Register mounts the game routes. The player id must already be in Locals.
func (gc *GameController) Register(r fiber.Router) {
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Get("/:gameId/log", gc.GetLog)
	r.Get("/:gameId/moves/:square", gc.ValidMoves)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Post("/:gameId/:action", gc.Control)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetLog(c *fiber.Ctx) error {
	log, err := gc.gameService.GetLog(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	if log == nil {
		log = []model.TurnRecord{}
	}
	return c.JSON(log)
}

func (gc *GameController) ValidMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	playerID := c.Locals("playerID").(string)

	record, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, move.From, move.To)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(record)
}

func (gc *GameController) Control(c *fiber.Ctx) error {
	state, err := gc.gameService.Control(c.Params("gameId"), c.Params("action"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{"state": state})
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		gc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// statusFor maps engine and service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case model.IsFatal(err):
		return fiber.StatusInternalServerError
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameNotRunning),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrDuplicateConnection),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrIllegalDestination),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, service.ErrUnknownAction):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
