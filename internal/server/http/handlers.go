package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
	"github.com/kayatkin/flight-tracker-sub000/internal/analyzer"
	"github.com/kayatkin/flight-tracker-sub000/internal/convert"
	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/service"
)

type handlers struct {
	resolver ShareResolver
	links    service.ShareLinks
	ping     func(ctx context.Context) error
}

// openShare renders a view link. Edit links only work inside the chat app, so
// they are answered with the deep link and the dataset is never loaded.
func (h *handlers) openShare(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	g, err := h.resolver.Authorize(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	if g.CanEdit() {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "edit links open inside the chat app",
			"link":  h.links.For(model.SharedSession{Token: token, Permission: g.Permission}),
		})
		return
	}
	d, err := h.resolver.Dataset(c.Request.Context(), g)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pb.OpenShareResponse{
		Dataset: convert.ToWireDataset(g, d, model.SaveStatus{}),
		Groups:  convert.ToWireGroups(analyzer.GroupByDestination(d.Flights)),
	})
}

func (h *handlers) health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps domain errors to HTTP JSON errors.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidToken):
		c.JSON(http.StatusNotFound, gin.H{"error": errs.ErrInvalidToken.Error()})
	case errors.Is(err, errs.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
