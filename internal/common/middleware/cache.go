package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"lead-voucher-backend/internal/common/errors"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// RedisCache caches 2xx GET responses for ttl, keyed by method and route
// template. Query strings do not create new entries.
func RedisCache(rdb redis.Cmdable, ttl time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := "httpcache:" + c.Request.Method + ":" + route

		bs, err := rdb.Get(c.Request.Context(), key).Bytes()
		switch {
		case err == nil && len(bs) > 0:
			var entry cachedResponse
			if json.Unmarshal(bs, &entry) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(entry.Status, entry.ContentType, entry.Body)
				c.Abort()
				return
			}
		case err != nil && err != redis.Nil:
			SendError(c, errors.NewCacheError(err).WithContext("key", key), logger)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		entry := cachedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.buf.Bytes(),
		}
		if payload, err := json.Marshal(entry); err == nil {
			if err := rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
			}
		}
	}
}
