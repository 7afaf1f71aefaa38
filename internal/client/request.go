package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// State estado de la última llamada lógica de un Request.
type State struct {
	Loading bool
	Data    json.RawMessage // nil si no hubo cuerpo JSON válido
	Error   string
}

// Request envuelve llamadas JSON y guarda loading/data/error de una llamada a la vez.
// Los verbos nunca devuelven error: los fallos quedan en State().Error.
// No cancela llamadas anteriores: una respuesta lenta puede pisar el estado de una posterior.
type Request struct {
	client *Client

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// State devuelve una copia del estado actual.
func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// OnChange registra fn; se invoca en cada transición de estado (inicio y fin de cada llamada).
func (r *Request) OnChange(fn func(State)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// GetJSON GET path.
func (r *Request) GetJSON(ctx context.Context, path string) json.RawMessage {
	return r.do(ctx, http.MethodGet, path, nil).Data
}

// PostJSON POST path con body serializado como JSON.
func (r *Request) PostJSON(ctx context.Context, path string, body any) json.RawMessage {
	return r.do(ctx, http.MethodPost, path, body).Data
}

// PatchJSON PATCH path con body serializado como JSON.
func (r *Request) PatchJSON(ctx context.Context, path string, body any) json.RawMessage {
	return r.do(ctx, http.MethodPatch, path, body).Data
}

// do ejecuta la llamada y devuelve el estado final que dejó (no el que pueda dejar una llamada concurrente).
func (r *Request) do(ctx context.Context, method, path string, body any) State {
	r.set(State{Loading: true})

	var final State
	if data, errMsg := r.call(ctx, method, path, body); errMsg != "" {
		final = State{Error: errMsg}
	} else {
		final = State{Data: data}
	}
	r.set(final)
	return final
}

func (r *Request) call(ctx context.Context, method, path string, body any) (json.RawMessage, string) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err.Error()
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.url(path), reader)
	if err != nil {
		return nil, err.Error()
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.http.Do(req)
	if err != nil {
		return nil, err.Error()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err.Error()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorMessage(raw, resp.StatusCode)
	}
	return parseBody(raw), ""
}

// parseBody devuelve el cuerpo si es JSON válido y no null.
func parseBody(raw []byte) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.RawMessage(raw)
}

// errorMessage toma detail o message (string) del cuerpo; si no, "Request failed (status)".
func errorMessage(raw []byte, status int) string {
	var body struct {
		Detail  any `json:"detail"`
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if s, ok := body.Detail.(string); ok && s != "" {
			return s
		}
		if s, ok := body.Message.(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}

func (r *Request) set(s State) {
	r.mu.Lock()
	r.state = s
	listeners := append([]func(State){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// Decode deserializa data en v. Data nil deja v sin cambios y devuelve false.
func Decode(data json.RawMessage, v any) bool {
	if data == nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
