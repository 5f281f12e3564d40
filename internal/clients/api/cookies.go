package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type storedCookie struct {
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Expires *time.Time `json:"expires,omitempty"`
}

func (c *Client) cookieJar() http.CookieJar {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jar
}

// rememberExpiries records when each cookie set by the API runs out. The jar
// does not expose it and the exported session needs it.
func (c *Client) rememberExpiries(cookies []*http.Cookie, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, cookie := range cookies {
		switch {
		case cookie.MaxAge < 0:
			delete(c.expiries, cookie.Name)
		case cookie.MaxAge > 0:
			c.expiries[cookie.Name] = now.Add(time.Duration(cookie.MaxAge) * time.Second)
		case !cookie.Expires.IsZero():
			c.expiries[cookie.Name] = cookie.Expires
		default:
			delete(c.expiries, cookie.Name)
		}
	}
}

// HasCookie reports whether the jar holds a cookie that would be sent to the API.
func (c *Client) HasCookie(name string) bool {
	for _, cookie := range c.cookieJar().Cookies(c.baseURL) {
		if cookie.Name == name && cookie.Value != "" {
			return true
		}
	}
	return false
}

// ResetCookies drops every credential the client holds.
func (c *Client) ResetCookies() {
	jar, err := newJar()
	if err != nil {
		return
	}
	c.mu.Lock()
	c.jar = jar
	c.expiries = make(map[string]time.Time)
	c.mu.Unlock()
}

// ExportCookies serializes the credentials sent to the API with their expiry.
func (c *Client) ExportCookies() ([]byte, error) {
	cookies := c.cookieJar().Cookies(c.baseURL)

	c.mu.RLock()
	defer c.mu.RUnlock()

	stored := make([]storedCookie, 0, len(cookies))
	for _, cookie := range cookies {
		s := storedCookie{Name: cookie.Name, Value: cookie.Value}
		if expires, ok := c.expiries[cookie.Name]; ok {
			s.Expires = &expires
		}
		stored = append(stored, s)
	}
	return json.Marshal(stored)
}

// ImportCookies restores credentials produced by ExportCookies. Cookies that
// expired in the meantime are skipped.
func (c *Client) ImportCookies(data []byte) error {
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("error decoding stored cookies: %w", err)
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookie := &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"}
		if s.Expires != nil {
			if !s.Expires.After(now) {
				continue
			}
			cookie.Expires = *s.Expires
		}
		cookies = append(cookies, cookie)
	}

	root := *c.baseURL
	root.Path = "/"
	c.cookieJar().SetCookies(&root, cookies)
	c.rememberExpiries(cookies, now)
	return nil
}
