package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/auth"
)

// RouteOption adjusts the metadata of a group or a single route.
// Handler-level options are applied after the group's, so they win.
type RouteOption func(*routeDef)

type routeDef struct {
	spec       auth.RouteSpec
	middleware []fiber.Handler
}

// Public lets the route through without a token.
func Public() RouteOption {
	return func(d *routeDef) {
		d.spec.Public = true
		d.spec.SkipPermission = false
	}
}

// Protected undoes a group-level Public or SkipPermission.
func Protected() RouteOption {
	return func(d *routeDef) {
		d.spec.Public = false
		d.spec.SkipPermission = false
	}
}

// SkipPermission requires a valid token but no permission record.
func SkipPermission() RouteOption {
	return func(d *routeDef) {
		d.spec.Public = false
		d.spec.SkipPermission = true
	}
}

// Before runs extra handlers after the gate and before the route handler.
func Before(handlers ...fiber.Handler) RouteOption {
	return func(d *routeDef) {
		d.middleware = append(d.middleware, handlers...)
	}
}

// RouteTable registers routes behind the gate and remembers their metadata.
type RouteTable struct {
	app    fiber.Router
	gate   *auth.Gate
	prefix string
	routes []auth.RouteSpec
}

// NewRouteTable builds a table rooted at prefix.
func NewRouteTable(app fiber.Router, gate *auth.Gate, prefix string) *RouteTable {
	return &RouteTable{app: app, gate: gate, prefix: prefix}
}

// Group starts a module group under the API prefix.
func (t *RouteTable) Group(path, module string, opts ...RouteOption) *RouteGroup {
	return &RouteGroup{table: t, path: t.prefix + path, module: module, opts: opts}
}

// Routes returns every registered route in registration order.
func (t *RouteTable) Routes() []auth.RouteSpec {
	out := make([]auth.RouteSpec, len(t.routes))
	copy(out, t.routes)
	return out
}

// RouteGroup shares a path prefix, a permission module and default options.
// RouteGroup shares a path prefix, a permission module and options across its routes.
type RouteGroup struct {
	table  *RouteTable
	path   string
	module string
	opts   []RouteOption
}

// Get registers a GET route under the group.
func (g *RouteGroup) Get(path string, handler fiber.Handler, opts ...RouteOption) {
	g.add(fiber.MethodGet, path, handler, opts)
}

// Post registers a POST route under the group.
func (g *RouteGroup) Post(path string, handler fiber.Handler, opts ...RouteOption) {
	g.add(fiber.MethodPost, path, handler, opts)
}

// Patch registers a PATCH route under the group.
func (g *RouteGroup) Patch(path string, handler fiber.Handler, opts ...RouteOption) {
	g.add(fiber.MethodPatch, path, handler, opts)
}

// Delete registers a DELETE route under the group.
func (g *RouteGroup) Delete(path string, handler fiber.Handler, opts ...RouteOption) {
	g.add(fiber.MethodDelete, path, handler, opts)
}

func (g *RouteGroup) add(method, path string, handler fiber.Handler, opts []RouteOption) {
	def := routeDef{spec: auth.RouteSpec{Method: method, Path: g.path + path, Module: g.module}}
	for _, opt := range g.opts {
		opt(&def)
	}
	for _, opt := range opts {
		opt(&def)
	}

	handlers := make([]fiber.Handler, 0, len(def.middleware)+2)
	handlers = append(handlers, g.table.gate.Guard(def.spec))
	handlers = append(handlers, def.middleware...)
	handlers = append(handlers, handler)

	g.table.app.Add(method, def.spec.Path, handlers...)
	g.table.routes = append(g.table.routes, def.spec)
}
