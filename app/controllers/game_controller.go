package controllers

import (
	"errors"
	"strconv"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/table"
	"github.com/DedS3t/monopoly-engine/platform/trade"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Records reads and removes persisted games.
type Records interface {
	Exists(id string) bool
	Get(id string) (models.Game, error)
	List(status string) ([]models.Game, error)
	Delete(id string) error
}

// GameController serves the tables of a manager. Journal and Records may be
// nil when redis or postgres is not configured.
type GameController struct {
	Tables  *table.Manager
	Journal *cache.Journal
	Records Records
	Secret  []byte
}

type tradeDto struct {
	Counterpart int          `json:"counterpart"`
	Wanted      trade.Bundle `json:"wanted"`
	Offered     trade.Bundle `json:"offered"`
}

// Status maps an error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, table.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, table.ErrClosed):
		return fiber.StatusGone
	case gameerr.CodeOf(err) == gameerr.CodeInvalidState:
		return fiber.StatusConflict
	case gameerr.IsValidation(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := Status(err)
	switch {
	case status == fiber.StatusInternalServerError:
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
	case gameerr.IsValidation(err):
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": c.Path(),
			"code": gameerr.CodeOf(err),
		}).Warn("command rejected")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  gameerr.CodeOf(err),
	})
}

func (h *GameController) CreateGame(c *fiber.Ctx) error {
	dto := new(models.GameCreateDto)
	if err := c.BodyParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	t, err := h.Tables.Create(*dto)
	if err != nil {
		return fail(c, err)
	}
	token, err := IssueToken(h.Secret, t.ID)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           t.ID,
		"access_token": token,
		"view":         t.View(),
	})
}

// GetAllGames lists the running tables, or the recorded games of a status
// when ?status= is given and games are recorded.
func (h *GameController) GetAllGames(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" || h.Records == nil {
		return c.JSON(h.Tables.List())
	}
	games, err := h.Records.List(status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(games)
}

func (h *GameController) VerifyGame(c *fiber.Ctx) error {
	dto := new(models.VerifyGameDto)
	if err := c.QueryParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	recorded := h.Records != nil && h.Records.Exists(dto.Code)
	return c.JSON(fiber.Map{"status": h.Tables.Exists(dto.Code), "recorded": recorded})
}

// GetRecord returns the stored record of a running or finished game.
func (h *GameController) GetRecord(c *fiber.Ctx) error {
	if h.Records == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "game records disabled"})
	}
	game, err := h.Records.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not recorded"})
	}
	return c.JSON(game)
}

func (h *GameController) table(c *fiber.Ctx) (*table.Table, error) {
	return h.Tables.Get(c.Params("id"))
}

func position(c *fiber.Ctx) (int, error) {
	pos, err := strconv.Atoi(c.Params("pos"))
	if err != nil {
		return 0, gameerr.Newf(gameerr.CodeInvalidPosition, "position %q is not a number", c.Params("pos"))
	}
	return pos, nil
}

func (h *GameController) GetGame(c *fiber.Ctx) error {
	t, err := h.table(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(t.View())
}

func (h *GameController) GetLog(c *fiber.Ctx) error {
	if h.Journal == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "event journal disabled"})
	}
	t, err := h.table(c)
	if err != nil {
		return fail(c, err)
	}
	events, err := h.Journal.Events(t.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(events)
}

func (h *GameController) GetStandings(c *fiber.Ctx) error {
	t, err := h.table(c)
	if err != nil {
		return fail(c, err)
	}
	standings, err := t.Standings(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(standings)
}

// step runs a table command and replies with where it stopped.
func (h *GameController) step(c *fiber.Ctx, run func(t *table.Table) (table.Step, error)) error {
	t, err := h.table(c)
	if err != nil {
		return fail(c, err)
	}
	s, err := run(t)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(s)
}

// positional runs a table command on the :pos property.
func (h *GameController) positional(c *fiber.Ctx, run func(t *table.Table, pos int) (table.Step, error)) error {
	pos, err := position(c)
	if err != nil {
		return fail(c, err)
	}
	return h.step(c, func(t *table.Table) (table.Step, error) { return run(t, pos) })
}

func (h *GameController) TakeTurn(c *fiber.Ctx) error {
	return h.step(c, func(t *table.Table) (table.Step, error) { return t.TakeTurn(c.Context()) })
}

func (h *GameController) Answer(c *fiber.Ctx) error {
	a := new(table.Answer)
	if err := c.BodyParser(a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.step(c, func(t *table.Table) (table.Step, error) { return t.Answer(c.Context(), *a) })
}

func (h *GameController) AddRestaurant(c *fiber.Ctx) error {
	return h.positional(c, func(t *table.Table, pos int) (table.Step, error) { return t.AddRestaurant(c.Context(), pos) })
}

func (h *GameController) SellRestaurant(c *fiber.Ctx) error {
	return h.positional(c, func(t *table.Table, pos int) (table.Step, error) { return t.SellRestaurant(c.Context(), pos) })
}

func (h *GameController) Pawn(c *fiber.Ctx) error {
	return h.positional(c, func(t *table.Table, pos int) (table.Step, error) { return t.Pawn(c.Context(), pos) })
}

func (h *GameController) Unpawn(c *fiber.Ctx) error {
	return h.positional(c, func(t *table.Table, pos int) (table.Step, error) { return t.Unpawn(c.Context(), pos) })
}

func (h *GameController) Trade(c *fiber.Ctx) error {
	dto := new(tradeDto)
	if err := c.BodyParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.step(c, func(t *table.Table) (table.Step, error) {
		return t.Trade(c.Context(), dto.Counterpart, dto.Wanted, dto.Offered)
	})
}

func (h *GameController) DropOut(c *fiber.Ctx) error {
	return h.step(c, func(t *table.Table) (table.Step, error) { return t.DropOut(c.Context()) })
}

func (h *GameController) EndGame(c *fiber.Ctx) error {
	return h.step(c, func(t *table.Table) (table.Step, error) { return t.EndGame(c.Context()) })
}

// CloseGame stops a table. With ?purge=true its journal and record are
// removed as well.
func (h *GameController) CloseGame(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Tables.Close(id); err != nil {
		return fail(c, err)
	}
	if c.Query("purge") != "true" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if h.Journal != nil {
		if err := h.Journal.Drop(id); err != nil {
			return fail(c, err)
		}
	}
	if h.Records != nil {
		if err := h.Records.Delete(id); err != nil {
			return fail(c, err)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
