package inspect

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/dingu/di"
)

// Source is the read-only view of a registry the handlers need.
// *di.Registry satisfies it.
type Source interface {
	Name() string
	ID() string
	Locked() bool
	Registrations() []di.RegistrationInfo
	Registration(name string) (di.RegistrationInfo, bool)
}

// Listing is the body of the registrations endpoint.
type Listing struct {
	Registry string                `json:"registry"`
	ID       string                `json:"id"`
	Locked   bool                  `json:"locked"`
	Entries  []di.RegistrationInfo `json:"entries"`
}

// Registrations returns a handler listing every entry sorted by name.
func Registrations(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries := src.Registrations()
		respondOK(c, Listing{
			Registry: src.Name(),
			ID:       src.ID(),
			Locked:   src.Locked(),
			Entries:  entries,
		}, &Meta{Total: len(entries)})
	}
}

// Entry returns a handler for a single entry named by the :name path
// parameter. Unknown names produce a 404 error body.
func Entry(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		info, ok := src.Registration(name)
		if !ok {
			respondWithError(c, &di.ItemNotFoundError{Name: name})
			return
		}
		respondOK(c, info, nil)
	}
}

// Mount registers both handlers under /di.
func Mount(router gin.IRouter, src Source) {
	group := router.Group("/di")
	group.GET("", Registrations(src))
	group.GET("/:name", Entry(src))
}
