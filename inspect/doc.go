// Package inspect exposes read-only HTTP views of a dingu registry for gin
// routers.
//
//	router := gin.New()
//	inspect.Mount(router, registry)
//
// GET /di lists every entry with its mode, dependencies and whether it has
// been constructed. GET /di/:name returns a single entry. Neither handler
// resolves entries.
package inspect
