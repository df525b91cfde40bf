// internal/middleware/locale.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")

		if lang != "" {
			// Handle cases like "fr-FR,fr;q=0.9,en;q=0.8"
			langs := strings.Split(lang, ",")
			if len(langs) > 0 {
				firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
				if idx := strings.IndexAny(firstLang, "-_"); idx > 0 {
					firstLang = firstLang[:idx]
				}
				lang = strings.ToLower(firstLang)
			}
		} else {
			lang = "en"
		}

		c.Set("lang", lang)
		c.Next()
	}
}
