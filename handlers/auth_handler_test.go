package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterAssignsRoles(t *testing.T) {
	app := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/api/v1/auth/register", "",
		fiber.Map{"username": "alice", "password": "secret123"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", resp.StatusCode)
	}
	var first struct {
		Role string `json:"role"`
	}
	decode(t, resp, &first)
	if first.Role != "admin" {
		t.Fatalf("first user role = %s, want admin", first.Role)
	}

	resp = request(t, app, http.MethodPost, "/api/v1/auth/register", "",
		fiber.Map{"username": "bob", "password": "secret123"})
	var second struct {
		Role string `json:"role"`
	}
	decode(t, resp, &second)
	if second.Role != "player" {
		t.Fatalf("second user role = %s, want player", second.Role)
	}
}

func TestRegisterDuplicateUsernameConflict(t *testing.T) {
	app := newTestApp(t)

	body := fiber.Map{"username": "alice", "password": "secret123"}
	resp := request(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	resp.Body.Close()

	resp = request(t, app, http.MethodPost, "/api/v1/auth/register", "", body)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice")

	resp := request(t, app, http.MethodPost, "/api/v1/auth/login", "",
		fiber.Map{"username": "alice", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	resp = request(t, app, http.MethodPost, "/api/v1/auth/login", "",
		fiber.Map{"username": "nobody", "password": "secret123"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}
