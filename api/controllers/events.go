package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/luckyegg/storefront-backend/api/responses"
	"github.com/luckyegg/storefront-backend/internal/catalogwatch"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

const sseKeepAlive = 25 * time.Second

// CatalogEvents streams catalog change events over SSE so storefront
// clients can re-fetch when the collection changes.
func CatalogEvents(watcher *catalogwatch.Watcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		events, err := watcher.Watch(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribing to catalog changes"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		keepAlive := time.NewTicker(sseKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			case event, open := <-events:
				if !open {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: catalog\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
