package controllers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/table"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestFailStatusAndLogging(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		level  logrus.Level
		logged bool
	}{
		{
			name:   "illegal development",
			err:    gameerr.New(gameerr.CodeIllegalDevelopment, "Waterfront is not owned entirely by player 1"),
			status: fiber.StatusBadRequest,
			level:  logrus.WarnLevel,
			logged: true,
		},
		{
			name:   "invalid state",
			err:    gameerr.New(gameerr.CodeInvalidState, "waiting for an answer"),
			status: fiber.StatusConflict,
		},
		{
			name:   "table not found",
			err:    table.ErrNotFound,
			status: fiber.StatusNotFound,
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			status: fiber.StatusInternalServerError,
			level:  logrus.ErrorLevel,
			logged: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := test.NewGlobal()
			defer hook.Reset()

			app := fiber.New()
			app.Post("/game/:id/develop/:pos", func(c *fiber.Ctx) error { return fail(c, tt.err) })
			resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/game/t1/develop/7", nil), -1)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			entry := hook.LastEntry()
			if !tt.logged {
				if entry != nil {
					t.Fatalf("unexpected log entry %q", entry.Message)
				}
				return
			}
			if entry == nil || entry.Level != tt.level {
				t.Fatalf("log entry = %+v, want level %s", entry, tt.level)
			}
			if entry.Data["path"] != "/game/t1/develop/7" {
				t.Fatalf("path field = %v", entry.Data["path"])
			}
		})
	}
}
