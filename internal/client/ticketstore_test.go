package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/console"
	"github.com/spec-kit/ops-console/internal/domain"
)

func TestGetTicketDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets/t1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"data":{"id":"t1","title":"Impresora","status":"Nuevo","priority":"Media","annotations":[]}}`))
	}))
	defer server.Close()

	store := NewStore(server.URL, "tok")
	ticket, err := store.GetTicket(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if ticket.ID != "t1" || ticket.Status != domain.StatusNuevo {
		t.Errorf("ticket = %+v", ticket)
	}
}

func TestPutTicketSendsFullReplaceBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"id":"t1","title":"Impresora","status":"Resuelto","priority":"Alta","annotations":[]}}`))
	}))
	defer server.Close()

	store := NewStore(server.URL, "")
	updated, err := store.PutTicket(context.Background(), "t1", console.TicketUpdate{
		Status:       domain.StatusResuelto,
		Priority:     domain.PriorityAlta,
		NotifyClient: true,
		Annotations: []domain.Annotation{
			{Text: "<p>listo</p>", CreatedAt: time.Now(), User: "Ana"},
		},
	})
	if err != nil {
		t.Fatalf("PutTicket: %v", err)
	}
	if updated.Status != domain.StatusResuelto {
		t.Errorf("status = %q", updated.Status)
	}
	if received["status"] != "Resuelto" {
		t.Errorf("body status = %v", received["status"])
	}
	if received["notifyClient"] != true {
		t.Errorf("body notifyClient = %v", received["notifyClient"])
	}
	annotations, ok := received["annotations"].([]any)
	if !ok || len(annotations) != 1 {
		t.Errorf("body annotations = %v", received["annotations"])
	}
}

func TestErrorResponsesSurfaceAPICode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"resource not found"}}`))
	}))
	defer server.Close()

	store := NewStore(server.URL, "")
	_, err := store.GetTicket(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "NOT_FOUND" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestDirectoriesDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			_, _ = w.Write([]byte(`{"data":[{"id":"u1","legacyId":"7","name":"Ana","email":"ana@example.com","role":"OPERATOR","active":true}]}`))
		case "/groups":
			_, _ = w.Write([]byte(`{"data":[{"id":"g1","name":"Soporte"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := NewStore(server.URL, "")
	users, err := store.GetUsers(context.Background())
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 || users[0].LegacyID != "7" {
		t.Errorf("users = %+v", users)
	}
	groups, err := store.GetGroups(context.Background())
	if err != nil {
		t.Fatalf("GetGroups: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Soporte" {
		t.Errorf("groups = %+v", groups)
	}
}
