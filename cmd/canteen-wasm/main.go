//go:build js && wasm

// Command canteen-wasm runs the canteen client inside the page. It mounts
// the theme toggle and exposes the ordering client to page scripts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"syscall/js"

	"github.com/Lixing-Zhang/canteen/internal/client"
	"github.com/Lixing-Zhang/canteen/internal/models"
	"github.com/Lixing-Zhang/canteen/internal/session"
	"github.com/Lixing-Zhang/canteen/internal/storage"
	"github.com/Lixing-Zhang/canteen/internal/theme"
	"github.com/Lixing-Zhang/canteen/pkg/logger"
)

// locationNavigator sends the tab to another page
type locationNavigator struct{}

func (locationNavigator) Navigate(ctx context.Context, target string) error {
	js.Global().Get("window").Get("location").Set("href", target)
	return nil
}

func main() {
	ctx := context.Background()
	log := logger.New("info")
	slog.SetDefault(log)

	local, err := storage.NewLocalStore()
	if err != nil {
		log.Error("local storage unavailable", "error", err)
		return
	}
	sessionSlots, err := storage.NewSessionStore()
	if err != nil {
		log.Error("session storage unavailable", "error", err)
		return
	}

	origin := js.Global().Get("location").Get("origin").String()
	c, err := client.New(origin, client.WithLogger(log))
	if err != nil {
		log.Error("failed to create client", "error", err)
		return
	}

	sessions := session.New(sessionSlots, locationNavigator{}, log)

	view, err := theme.NewDOMView()
	if err != nil {
		log.Error("no document", "error", err)
		return
	}
	themes := theme.NewController(view, local, log)
	view.OnChange(func() {
		if _, err := themes.Changed(ctx); err != nil {
			log.Warn("failed to save theme", "error", err)
		}
	})

	mount := func() {
		if _, err := themes.Inject(ctx); err != nil {
			log.Warn("failed to mount theme toggle", "error", err)
		}
	}
	doc := js.Global().Get("document")
	if doc.Get("readyState").String() == "loading" {
		doc.Call("addEventListener", "DOMContentLoaded", js.FuncOf(func(js.Value, []js.Value) any {
			themes.Initialize(ctx)
			mount()
			return nil
		}))
	} else {
		themes.Initialize(ctx)
		mount()
	}

	go func() {
		if err := themes.Follow(ctx); err != nil {
			log.Warn("theme follow stopped", "error", err)
		}
	}()

	// Existing markup calls toggleTheme() from the checkbox's onchange
	js.Global().Set("toggleTheme", js.FuncOf(func(js.Value, []js.Value) any {
		if _, err := themes.Changed(ctx); err != nil {
			log.Warn("failed to save theme", "error", err)
		}
		return nil
	}))

	js.Global().Set("canteen", js.ValueOf(map[string]any{
		"getMenu": async(func(args []js.Value) (any, error) {
			return c.FetchMenu(ctx).Value, nil
		}),
		"placeOrder": async(func(args []js.Value) (any, error) {
			order, err := rawArg(args, 0)
			if err != nil {
				return nil, err
			}
			id, err := c.PlaceOrder(ctx, order)
			if err != nil {
				return nil, err
			}
			return map[string]any{"orderId": id}, nil
		}),
		"getAllOrders": async(func(args []js.Value) (any, error) {
			return c.FetchOrders(ctx).Value, nil
		}),
		"updateOrderStatus": async(func(args []js.Value) (any, error) {
			if len(args) < 2 {
				return false, nil
			}
			return c.UpdateOrderStatus(ctx, models.OrderID(args[0].String()), models.OrderStatus(args[1].String())).Value, nil
		}),
		"updateMenuItem": async(func(args []js.Value) (any, error) {
			if len(args) < 2 {
				return false, nil
			}
			return c.UpdateMenuItem(ctx, args[0].String(), args[1].Bool()).Value, nil
		}),
		"getCurrentUser": js.FuncOf(func(js.Value, []js.Value) any {
			raw, ok := sessions.GetRaw(ctx)
			if !ok {
				return js.Null()
			}
			return js.Global().Get("JSON").Call("parse", string(raw))
		}),
		"saveSession": js.FuncOf(func(this js.Value, args []js.Value) any {
			user, err := rawArg(args, 0)
			if err != nil {
				log.Warn("refusing to save session", "error", err)
				return false
			}
			if err := sessions.SaveRaw(ctx, user); err != nil {
				log.Warn("failed to save session", "error", err)
				return false
			}
			return true
		}),
		"clearSession": js.FuncOf(func(js.Value, []js.Value) any {
			if err := sessions.ClearSession(ctx); err != nil {
				log.Warn("failed to clear session", "error", err)
			}
			return nil
		}),
	}))

	log.Info("canteen client ready", "origin", origin)
	select {}
}

// async runs fn off the event loop and returns a Promise of its result
func async(fn func(args []js.Value) (any, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		executor := js.FuncOf(func(this js.Value, p []js.Value) any {
			resolve, reject := p[0], p[1]
			go func() {
				result, err := fn(args)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New(err.Error()))
					return
				}
				resolve.Invoke(toJS(result))
			}()
			return nil
		})
		defer executor.Release()
		return js.Global().Get("Promise").New(executor)
	})
}

// toJS converts v to a plain JS value through JSON
func toJS(v any) js.Value {
	data, err := json.Marshal(v)
	if err != nil {
		return js.Null()
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

// rawArg returns args[i], a JS object, as the JSON text the page would send
func rawArg(args []js.Value, i int) (json.RawMessage, error) {
	if len(args) <= i || args[i].IsUndefined() || args[i].IsNull() {
		return nil, errors.New("missing argument")
	}
	return json.RawMessage(js.Global().Get("JSON").Call("stringify", args[i]).String()), nil
}
