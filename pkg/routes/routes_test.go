package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/table"
	"github.com/gofiber/fiber/v2"
)

var secret = []byte("test-secret")

type fakeRecords map[string]models.Game

func (f fakeRecords) Exists(id string) bool {
	_, ok := f[id]
	return ok
}

func (f fakeRecords) Get(id string) (models.Game, error) {
	g, ok := f[id]
	if !ok {
		return models.Game{}, errors.New("no rows")
	}
	return g, nil
}

func (f fakeRecords) List(status string) ([]models.Game, error) {
	var out []models.Game
	for _, g := range f {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f fakeRecords) Delete(id string) error {
	delete(f, id)
	return nil
}

func newApp(t *testing.T) *fiber.App {
	return newAppWith(t, nil)
}

func newAppWith(t *testing.T, records controllers.Records) *fiber.App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	app := fiber.New()
	AuthRoutes(app, secret)
	GameRoutes(app, &controllers.GameController{
		Tables:  table.NewManager(ctx, 1, nil),
		Records: records,
		Secret:  secret,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func create(t *testing.T, app *fiber.App) (string, string) {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/game/create", "", `{"name":"friday","players":["Ann","Bob"]}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d, body = %v", status, body)
	}
	return body["id"].(string), body["access_token"].(string)
}

func TestCreateAndView(t *testing.T) {
	app := newApp(t)
	id, token := create(t, app)

	status, body := do(t, app, http.MethodGet, "/game/"+id, token, "")
	if status != fiber.StatusOK {
		t.Fatalf("view status = %d", status)
	}
	if body["name"] != "friday" || len(body["players"].([]interface{})) != 2 {
		t.Fatalf("view = %v", body)
	}

	status, body = do(t, app, http.MethodGet, "/game/verify?code="+id, "", "")
	if status != fiber.StatusOK || body["status"] != true {
		t.Fatalf("verify = %d %v", status, body)
	}
	status, body = do(t, app, http.MethodGet, "/session/", token, "")
	if status != fiber.StatusOK || body["table_id"] != id {
		t.Fatalf("session = %d %v", status, body)
	}
}

func TestCreateRejectsBadPlayers(t *testing.T) {
	app := newApp(t)
	status, body := do(t, app, http.MethodPost, "/game/create", "", `{"players":["solo"]}`)
	if status != fiber.StatusBadRequest || body["code"] != "INVALID_PLAYERS" {
		t.Fatalf("create = %d %v", status, body)
	}
}

func TestTableAuth(t *testing.T) {
	app := newApp(t)
	id, _ := create(t, app)
	_, other := create(t, app)

	if status, _ := do(t, app, http.MethodGet, "/game/"+id, "", ""); status == fiber.StatusOK {
		t.Fatal("view without a token must fail")
	}
	if status, _ := do(t, app, http.MethodGet, "/game/"+id, other, ""); status != fiber.StatusForbidden {
		t.Fatalf("view with another table's token = %d", status)
	}
}

func TestCommandErrors(t *testing.T) {
	app := newApp(t)
	id, token := create(t, app)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "pawn a draw space", method: http.MethodPost, path: "/pawn/3", status: fiber.StatusBadRequest},
		{name: "position not a number", method: http.MethodPost, path: "/develop/x", status: fiber.StatusBadRequest},
		{name: "answer without prompt", method: http.MethodPost, path: "/answer", status: fiber.StatusConflict},
		{name: "end", method: http.MethodPost, path: "/end", status: fiber.StatusOK},
		{name: "turn after end", method: http.MethodPost, path: "/turn", status: fiber.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ""
			if tt.path == "/answer" {
				body = `{"prompt":1}`
			}
			if status, out := do(t, app, tt.method, "/game/"+id+tt.path, token, body); status != tt.status {
				t.Fatalf("status = %d, want %d (%v)", status, tt.status, out)
			}
		})
	}

	if status, _ := do(t, app, http.MethodDelete, "/game/"+id, token, ""); status != fiber.StatusNoContent {
		t.Fatalf("close status = %d", status)
	}
	if status, _ := do(t, app, http.MethodGet, "/game/"+id, token, ""); status != fiber.StatusNotFound {
		t.Fatalf("view after close = %d", status)
	}
}

func TestLogWithoutJournal(t *testing.T) {
	app := newApp(t)
	id, token := create(t, app)
	if status, _ := do(t, app, http.MethodGet, "/game/"+id+"/log", token, ""); status != fiber.StatusServiceUnavailable {
		t.Fatalf("log status = %d", status)
	}
}

func TestRecords(t *testing.T) {
	if status, _ := do(t, newApp(t), http.MethodGet, "/game/record/x", "", ""); status != fiber.StatusServiceUnavailable {
		t.Fatalf("record without a database = %d", status)
	}

	records := fakeRecords{}
	app := newAppWith(t, records)
	id, token := create(t, app)
	records[id] = models.Game{Id: id, Name: "friday", Status: models.GameStatusFinished, Winner: "Bob"}

	status, body := do(t, app, http.MethodGet, "/game/record/"+id, "", "")
	if status != fiber.StatusOK || body["Winner"] != "Bob" {
		t.Fatalf("record = %d %v", status, body)
	}
	if status, _ := do(t, app, http.MethodGet, "/game/record/missing", "", ""); status != fiber.StatusNotFound {
		t.Fatalf("missing record = %d", status)
	}
	if _, body := do(t, app, http.MethodGet, "/game/verify?code="+id, "", ""); body["recorded"] != true {
		t.Fatalf("verify = %v", body)
	}

	if status, _ := do(t, app, http.MethodDelete, "/game/"+id+"?purge=true", token, ""); status != fiber.StatusNoContent {
		t.Fatalf("purge status = %d", status)
	}
	if records.Exists(id) {
		t.Fatal("purge must delete the record")
	}
}
