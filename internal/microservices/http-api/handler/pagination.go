package handler

import (
	"net/url"
	"strconv"

	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// pageParam reads ?page=; anything but a positive integer is an invalid page.
func pageParam(c *gin.Context) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, service.ErrInvalidPage
	}
	return page, nil
}

// pageURL returns a function rendering the absolute URL of the current request
// at another page, keeping every other query parameter.
func pageURL(c *gin.Context) func(int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return func(page int) string {
		u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
		q := c.Request.URL.Query()
		if page <= 1 {
			q.Del("page")
		} else {
			q.Set("page", strconv.Itoa(page))
		}
		u.RawQuery = q.Encode()
		return u.String()
	}
}
