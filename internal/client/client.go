// Package client es el cliente HTTP de la API de vinos usado por el formulario, las vistas y el CLI.
package client

import (
	"net/http"
	"strings"
)

// Client cliente construido una sola vez con la URL base (VIN_API_URL) y compartido por las vistas.
type Client struct {
	baseURL string
	http    *http.Client
}

// New crea el cliente. hc nil usa http.DefaultClient (sin timeout: solo el contexto del llamador lo corta).
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL URL base sin barra final.
func (c *Client) BaseURL() string { return c.baseURL }

// NewRequest crea un Request con estado propio. Cada vista o formulario usa el suyo.
func (c *Client) NewRequest() *Request {
	return &Request{client: c}
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
