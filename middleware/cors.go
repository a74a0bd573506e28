package middleware

import (
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/cors"
)

// CORS is meant for Application.UseRouter so preflight requests are answered
// before route matching. "*" allows any origin. Requests without an Origin
// header are not cross-origin and always pass; listed origins are echoed
// back and anything else is refused with 403.
func CORS(origins []string) iris.Handler {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := false
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return cors.New().
		AllowOriginFunc(func(_ iris.Context, origin string) bool {
			if origin == "" || allowAll {
				return true
			}
			_, ok := allowed[origin]
			return ok
		}).
		AllowHeaders("Origin", "Content-Type", "Accept", "Authorization").
		Handler()
}
