// Package apiclient is the typed client for the POS REST backend. It attaches
// the bearer token to every outbound request and normalizes the backend's
// inconsistent list envelopes at the boundary so consumers never see them.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pos_manager/internal/models"

	"github.com/go-resty/resty/v2"
)

// TokenProvider returns the current bearer token, or "" when not logged in.
type TokenProvider func() string

type Client struct {
	http  *resty.Client
	token TokenProvider
}

func New(baseURL string, token TokenProvider) *Client {
	return &Client{
		http:  resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		token: token,
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if c.token != nil {
		if t := c.token(); t != "" {
			req.SetHeader("Authorization", "Bearer "+t)
		}
	}
	return req
}

// DecodeList unwraps a list response. The backend wraps arrays in different
// envelope shapes depending on the route, so unwrapping follows one fixed
// precedence: bare array, then .data array, then .data.data array, else an
// empty list.
func DecodeList(body []byte, dest interface{}) error {
	return json.Unmarshal(listPayload(body), dest)
}

func listPayload(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if isArray(trimmed) {
		return trimmed
	}
	var outer struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &outer); err == nil && len(outer.Data) > 0 {
		data := bytes.TrimSpace(outer.Data)
		if isArray(data) {
			return data
		}
		var inner struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &inner); err == nil {
			nested := bytes.TrimSpace(inner.Data)
			if isArray(nested) {
				return nested
			}
		}
	}
	return []byte("[]")
}

func isArray(b []byte) bool {
	return len(b) > 0 && b[0] == '['
}

// apiError surfaces the backend-provided message when available, else a
// generic fallback.
func apiError(resp *resty.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("%s", payload.Message)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode())
}

func (c *Client) getList(ctx context.Context, path string, dest interface{}) error {
	resp, err := c.request(ctx).Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return DecodeList(resp.Body(), dest)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	resp, err := c.request(ctx).SetBody(body).Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) put(ctx context.Context, path string, body interface{}) error {
	resp, err := c.request(ctx).SetBody(body).Put(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.request(ctx).Delete(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// Orders

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := c.getList(ctx, "/api/orders", &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, order models.Order) error {
	return c.post(ctx, "/api/orders", order)
}

func (c *Client) UpdateOrder(ctx context.Context, id uint, order models.Order) error {
	return c.put(ctx, fmt.Sprintf("/api/orders/%d", id), order)
}

func (c *Client) DeleteOrder(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/orders/%d", id))
}

// Tables

func (c *Client) Tables(ctx context.Context) ([]models.Table, error) {
	var out []models.Table
	err := c.getList(ctx, "/api/table", &out)
	return out, err
}

func (c *Client) CreateTable(ctx context.Context, table models.Table) error {
	return c.post(ctx, "/api/table", table)
}

func (c *Client) UpdateTable(ctx context.Context, id uint, table models.Table) error {
	return c.put(ctx, fmt.Sprintf("/api/table/%d", id), table)
}

func (c *Client) DeleteTable(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/table/%d", id))
}

// Categories

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.getList(ctx, "/api/category", &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) error {
	return c.post(ctx, "/api/category", category)
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, category models.Category) error {
	return c.put(ctx, fmt.Sprintf("/api/category/%d", id), category)
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/category/%d", id))
}

// Dishes

func (c *Client) Dishes(ctx context.Context) ([]models.Dish, error) {
	var out []models.Dish
	err := c.getList(ctx, "/api/dish", &out)
	return out, err
}

func (c *Client) CreateDish(ctx context.Context, dish models.Dish) error {
	return c.post(ctx, "/api/dish", dish)
}

func (c *Client) UpdateDish(ctx context.Context, id uint, dish models.Dish) error {
	return c.put(ctx, fmt.Sprintf("/api/dish/%d", id), dish)
}

func (c *Client) DeleteDish(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/dish/%d", id))
}

// Customers

func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := c.getList(ctx, "/api/customers", &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) error {
	return c.post(ctx, "/api/customers", customer)
}

func (c *Client) UpdateCustomer(ctx context.Context, id uint, customer models.Customer) error {
	return c.put(ctx, fmt.Sprintf("/api/customers/%d", id), customer)
}

func (c *Client) DeleteCustomer(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/customers/%d", id))
}

func (c *Client) SyncCustomerStats(ctx context.Context) error {
	return c.post(ctx, "/api/customers/sync-stats", nil)
}

// Users

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.getList(ctx, "/api/user", &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id uint, user models.User) error {
	return c.put(ctx, fmt.Sprintf("/api/user/%d", id), user)
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/user/%d", id))
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	resp, err := c.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/api/user/login")
	if err != nil {
		return out, err
	}
	if resp.IsError() {
		return out, apiError(resp)
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("failed to parse login response: %w", err)
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, name, email, phone, password, role string) error {
	return c.post(ctx, "/api/user/register", map[string]string{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
		"role":     role,
	})
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/user/logout", nil)
}
