package authapi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/authstub"
	"github.com/pawconnect/platform/internal/core/domain"
	"github.com/pawconnect/platform/internal/core/ports"
)

// newStubClient wires the client against an in-process instance of the Auth
// API contract.
func newStubClient(t *testing.T) *Client {
	t.Helper()

	e := authstub.NewServer(authstub.NewMemoryRepository(), "test-secret", time.Hour)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/api", zerolog.Nop())
}

func registerAdopter(t *testing.T, client *Client, email string) *domain.Session {
	t.Helper()

	resp, err := client.Register(context.Background(), ports.RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     "Adopter",
		Role:     domain.RoleAdopter,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Session == nil {
		t.Fatalf("expected an authenticated session")
	}
	return resp.Session
}

func TestClient_RegisterAndLogin(t *testing.T) {
	client := newStubClient(t)
	registerAdopter(t, client, "home@example.com")

	session, err := client.Login(context.Background(), "home@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !session.Authenticated() {
		t.Fatalf("expected a complete session, got %+v", session)
	}
	if session.User.Role != domain.RoleAdopter {
		t.Fatalf("unexpected role: %s", session.User.Role)
	}
}

func TestClient_RegisterVeterinarianRequiresVerification(t *testing.T) {
	client := newStubClient(t)

	resp, err := client.Register(context.Background(), ports.RegisterInput{
		Email:                "vet@example.com",
		Password:             "secret123",
		Name:                 "Vet",
		Role:                 domain.RoleVeterinarian,
		VerificationDocument: "license.pdf",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !resp.RequiresVerification {
		t.Fatalf("expected requiresVerification")
	}
	if resp.Session != nil {
		t.Fatalf("verification-pending registration must not carry a session")
	}
	if resp.Message == "" {
		t.Fatalf("expected a server message")
	}

	// The unverified account cannot log in yet.
	if _, err := client.Login(context.Background(), "vet@example.com", "secret123"); err == nil {
		t.Fatalf("unverified account must not authenticate")
	}
}

func TestClient_LoginWrongPassword(t *testing.T) {
	client := newStubClient(t)
	registerAdopter(t, client, "home@example.com")

	if _, err := client.Login(context.Background(), "home@example.com", "wrongpass"); err == nil {
		t.Fatalf("expected an error for wrong password")
	}
}

func TestClient_LoginTransportError(t *testing.T) {
	// Point at a server that is already gone.
	e := authstub.NewServer(authstub.NewMemoryRepository(), "test-secret", time.Hour)
	srv := httptest.NewServer(e)
	client := NewClient(srv.URL+"/api", zerolog.Nop())
	srv.Close()

	if _, err := client.Login(context.Background(), "a@b.c", "pass"); err == nil {
		t.Fatalf("expected a transport error")
	}
}

func TestClient_UpdateProfile(t *testing.T) {
	client := newStubClient(t)
	session := registerAdopter(t, client, "home@example.com")

	name := "Renamed"
	user, err := client.UpdateProfile(context.Background(), session.Token, ports.ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if user.Name != "Renamed" {
		t.Fatalf("name not updated: %+v", user)
	}
	if user.Role != domain.RoleAdopter {
		t.Fatalf("role must not change: %s", user.Role)
	}
}

func TestClient_UpdateProfileWrongCurrentPassword(t *testing.T) {
	client := newStubClient(t)
	session := registerAdopter(t, client, "home@example.com")

	_, err := client.UpdateProfile(context.Background(), session.Token, ports.ProfileUpdate{
		CurrentPassword: "wrongpass",
		NewPassword:     "newsecret1",
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("expected the server message, got %v", err)
	}
}

func TestClient_UpdateProfileBadToken(t *testing.T) {
	client := newStubClient(t)
	registerAdopter(t, client, "home@example.com")

	if _, err := client.UpdateProfile(context.Background(), "garbage-token", ports.ProfileUpdate{}); err == nil {
		t.Fatalf("expected an error for an invalid token")
	}
}
