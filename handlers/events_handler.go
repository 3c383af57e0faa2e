// handlers/events_handler.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
)

// StreamEvents pushes mutation events to the client over SSE. Clients
// subscribe once instead of polling storage on a timer.
func (a *API) StreamEvents(c *gin.Context) {
	client := a.Hub.Subscribe()
	defer a.Hub.Unsubscribe(client)

	c.Stream(func(w io.Writer) bool {
		select {
		case evt, ok := <-client.Chan():
			if !ok {
				return false
			}
			c.SSEvent(evt.Type, evt.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
