// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"code.hybscloud.com/hyper"
	"code.hybscloud.com/kont"
)

var (
	errNotFound         = errors.New("not found")
	errMethodNotAllowed = errors.New("method not allowed")
)

type routeHandler = hyper.Middleware[hyper.StatusOpen, hyper.ResponseEnded, error, struct{}]

type user struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

var users = map[string]user{
	"ninkasi": {Username: "ninkasi", Email: "ninkasi@bee.rs"},
}

// location is a matched route.
type location struct {
	route    string // "health", "users" or "user"
	username string
}

// knownMethods are the methods the router decodes; others are 405.
var knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut}

func parseLocation(target string) (location, bool) {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return location{}, false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(segs) == 1 && segs[0] == "health":
		return location{route: "health"}, true
	case len(segs) == 1 && segs[0] == "users":
		return location{route: "users"}, true
	case len(segs) == 2 && segs[0] == "user" && segs[1] != "":
		return location{route: "user", username: segs[1]}, true
	}
	return location{}, false
}

func sendStatus(code int) routeHandler {
	return hyper.Then(hyper.Status[error](code),
		hyper.Then(hyper.CloseHeaders[error](), hyper.End[error]()))
}

func sendJSON(code int, body any) routeHandler {
	return hyper.OrElse(
		hyper.Then(hyper.Status[error](code), hyper.JSON(body, func(err error) error { return err })),
		func(error) routeHandler { return sendStatus(http.StatusInternalServerError) },
	)
}

func getUsers(location) routeHandler {
	list := make([]user, 0, len(users))
	for _, name := range slices.Sorted(maps.Keys(users)) {
		list = append(list, users[name])
	}
	return sendJSON(http.StatusOK, list)
}

func getUser(loc location) routeHandler {
	u, ok := users[loc.username]
	if !ok {
		return sendStatus(http.StatusNotFound)
	}
	return sendJSON(http.StatusOK, u)
}

// handlers maps route and method to a handler.
var handlers = map[string]map[string]func(location) routeHandler{
	"health": {http.MethodGet: func(location) routeHandler { return sendStatus(http.StatusOK) }},
	"users":  {http.MethodGet: getUsers},
	"user":   {http.MethodGet: getUser},
}

func handle(loc location, method string) routeHandler {
	if h, ok := handlers[loc.route][method]; ok {
		return h(loc)
	}
	return sendStatus(http.StatusMethodNotAllowed)
}

var matchRoute = hyper.FromConnection(func(c hyper.StatusOpen) kont.Either[error, location] {
	loc, ok := parseLocation(c.OriginalURL())
	if !ok {
		return kont.Left[error, location](errNotFound)
	}
	return kont.Right[error](loc)
})

var decodeMethod = hyper.DecodeMethod(func(m string) kont.Either[error, string] {
	m = strings.ToUpper(m)
	if !slices.Contains(knownMethods, m) {
		return kont.Left[error, string](errMethodNotAllowed)
	}
	return kont.Right[error](m)
})

// router matches the route, then the method, and answers 404 or 405 when
// either does not match.
var router = hyper.OrElse(
	hyper.IChain(matchRoute, func(loc location) routeHandler {
		return hyper.IChain(decodeMethod, func(method string) routeHandler {
			return handle(loc, method)
		})
	}),
	func(err error) routeHandler {
		if errors.Is(err, errMethodNotAllowed) {
			return sendStatus(http.StatusMethodNotAllowed)
		}
		return sendStatus(http.StatusNotFound)
	},
)
