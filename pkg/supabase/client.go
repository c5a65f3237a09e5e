// Package supabase is a thin client for the Supabase REST (PostgREST) and
// auth endpoints. Repositories build query maps against it; it knows nothing
// about the domain tables.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to a Supabase project with the service key.
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
}

// Query executes a GET against a table. Query values are passed through as
// PostgREST filter expressions (e.g. "eq.<id>", "gte.<ts>").
func (c *Client) Query(table string, query map[string]interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	c.setAuthHeaders(req)

	return c.do(req)
}

// Insert inserts one record (or a slice of records) into a table and returns
// the created representation.
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	return c.do(req)
}

// Update patches the record with the given id and returns the new
// representation.
func (c *Client) Update(table string, id string, data interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s", c.URL, table, id)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("PATCH", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	return c.do(req)
}

// Delete removes the record with the given id.
func (c *Client) Delete(table string, id string) error {
	return c.DeleteWhere(table, map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", id),
	})
}

// DeleteWhere removes every record matching the query.
func (c *Client) DeleteWhere(table string, query map[string]interface{}) error {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	c.setAuthHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("supabase error: %s", string(body))
	}

	return nil
}

// User represents a Supabase auth user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken validates a user JWT against the auth endpoint and returns the
// user it belongs to.
func (c *Client) VerifyToken(token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *Client) SignInWithPassword(email, password string) ([]byte, error) {
	return c.authRequest("token?grant_type=password", email, password)
}

// SignUp registers a new user with email/password credentials.
func (c *Client) SignUp(email, password string) ([]byte, error) {
	return c.authRequest("signup", email, password)
}

func (c *Client) authRequest(path, email, password string) ([]byte, error) {
	url := fmt.Sprintf("%s/auth/v1/%s", c.URL, path)

	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error: %s", string(body))
	}

	return body, nil
}
