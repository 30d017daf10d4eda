// Package client implements the console's stores over the REST API. The
// standard net/http client is enough here: requests are plain JSON with a
// bearer token, no retries or middleware.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/ops-console/internal/console"
	"github.com/spec-kit/ops-console/internal/domain"
)

// APIError is a non-2xx response from the console API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Store talks to the console API. It implements console.TicketStore and
// console.DirectoryStore.
type Store struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewStore builds a store for the given API base URL and bearer token.
func NewStore(baseURL, token string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type ticketPayload struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	ClientID        string                `json:"clientId"`
	ClientName      string                `json:"clientName"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	Visit           bool                  `json:"visit"`
	Amount          *float64              `json:"amount,omitempty"`
	AmountCurrency  domain.Currency       `json:"amountCurrency,omitempty"`
	Description     string                `json:"description"`
	AssignedTo      *string               `json:"assignedTo,omitempty"`
	AssignedGroupID *string               `json:"assignedGroupId,omitempty"`
	Annotations     []domain.Annotation   `json:"annotations"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type updatePayload struct {
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	Visit           bool                  `json:"visit"`
	Amount          *float64              `json:"amount,omitempty"`
	AmountCurrency  domain.Currency       `json:"amountCurrency,omitempty"`
	Description     string                `json:"description"`
	AssignedTo      *string               `json:"assignedTo,omitempty"`
	AssignedGroupID *string               `json:"assignedGroupId,omitempty"`
	Annotations     []domain.Annotation   `json:"annotations"`
	NotifyClient    bool                  `json:"notifyClient"`
}

type userPayload struct {
	ID        string          `json:"id"`
	LegacyID  string          `json:"legacyId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	AvatarURL string          `json:"avatarUrl"`
	Role      domain.UserRole `json:"role"`
	Active    bool            `json:"active"`
}

type groupPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetTicket fetches one ticket with its annotation log.
func (s *Store) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	var payload ticketPayload
	if err := s.do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return ticketFromPayload(payload), nil
}

// PutTicket replaces the ticket with the submitted state and returns the
// server's authoritative copy.
func (s *Store) PutTicket(ctx context.Context, id string, update console.TicketUpdate) (*domain.Ticket, error) {
	body := updatePayload{
		Status:          update.Status,
		Priority:        update.Priority,
		Visit:           update.Visit,
		Amount:          update.Amount,
		AmountCurrency:  update.AmountCurrency,
		Description:     update.Description,
		AssignedTo:      update.AssignedTo,
		AssignedGroupID: update.AssignedGroupID,
		Annotations:     update.Annotations,
		NotifyClient:    update.NotifyClient,
	}
	if body.Annotations == nil {
		body.Annotations = []domain.Annotation{}
	}
	var payload ticketPayload
	if err := s.do(ctx, http.MethodPut, "/tickets/"+url.PathEscape(id), body, &payload); err != nil {
		return nil, err
	}
	return ticketFromPayload(payload), nil
}

// GetUsers fetches the assignable operator directory.
func (s *Store) GetUsers(ctx context.Context) ([]domain.User, error) {
	var payload []userPayload
	if err := s.do(ctx, http.MethodGet, "/users", nil, &payload); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(payload))
	for _, u := range payload {
		users = append(users, domain.User{
			ID:        u.ID,
			LegacyID:  u.LegacyID,
			Name:      u.Name,
			Email:     u.Email,
			AvatarURL: u.AvatarURL,
			Role:      u.Role,
			Active:    u.Active,
		})
	}
	return users, nil
}

// GetGroups fetches the assignable group directory.
func (s *Store) GetGroups(ctx context.Context) ([]domain.Group, error) {
	var payload []groupPayload
	if err := s.do(ctx, http.MethodGet, "/groups", nil, &payload); err != nil {
		return nil, err
	}
	groups := make([]domain.Group, 0, len(payload))
	for _, g := range payload {
		groups = append(groups, domain.Group{ID: g.ID, Name: g.Name})
	}
	return groups, nil
}

func (s *Store) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

func ticketFromPayload(payload ticketPayload) *domain.Ticket {
	return &domain.Ticket{
		ID:              payload.ID,
		Title:           payload.Title,
		ClientID:        payload.ClientID,
		ClientName:      payload.ClientName,
		Status:          payload.Status,
		Priority:        payload.Priority,
		Visit:           payload.Visit,
		Amount:          payload.Amount,
		AmountCurrency:  payload.AmountCurrency,
		Description:     payload.Description,
		AssignedTo:      payload.AssignedTo,
		AssignedGroupID: payload.AssignedGroupID,
		Annotations:     payload.Annotations,
		CreatedAt:       payload.CreatedAt,
		UpdatedAt:       payload.UpdatedAt,
	}
}
