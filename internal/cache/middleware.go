package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type recorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Responses serves GET requests from the store and records 200 JSON responses.
func Responses(store Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := Key(c.Request.URL.Path, c.Request.URL.Query())
		if body, ok, err := store.Get(c.Request.Context(), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		} else if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		gens := trackerFor(store)
		start := gens.begin()
		stored := false
		defer func() {
			// a mutation may have dropped key while this read was running
			if gens.end(key, start) && stored {
				if err := store.DeletePrefix(c.Request.Context(), key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("cache write rollback failed")
				}
			}
		}()
		rec := &recorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if rec.Status() == http.StatusOK && rec.body.Len() > 0 &&
			strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
			if err := store.Set(c.Request.Context(), key, rec.body.Bytes(), ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache write failed")
				return
			}
			stored = true
		}
	}
}

// Invalidate drops every cached query under the given path prefixes once the
// handler has answered with a 2xx. A ":param" segment is filled from the route.
// Reads still running against those prefixes will not store their result.
func Invalidate(store Store, prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if status := c.Writer.Status(); status < 200 || status > 299 {
			return
		}
		gens := trackerFor(store)
		for _, p := range prefixes {
			p = expand(c, p)
			gens.bump(p)
			if err := store.DeletePrefix(c.Request.Context(), p); err != nil {
				log.Warn().Err(err).Str("prefix", p).Msg("cache invalidation failed")
			}
		}
	}
}

func expand(c *gin.Context, prefix string) string {
	if !strings.Contains(prefix, ":") {
		return prefix
	}
	parts := strings.Split(prefix, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = c.Param(part[1:])
		}
	}
	return strings.Join(parts, "/")
}
