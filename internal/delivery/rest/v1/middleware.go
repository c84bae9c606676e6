package v1

import (
	"time"

	"kairopay/internal/domain"
	"kairopay/internal/infra/cache"
	"kairopay/internal/logger"

	"github.com/gin-gonic/gin"
)

const authContextKey = "authContext"

const DEFAULT_RATE_LIMIT = 100
const RATE_LIMIT_WINDOW_SECONDS = 30

// returns true if rate limit is exceeded
func orderRateLimit(key string, limit int) bool {
	var expiration = time.Second * time.Duration(RATE_LIMIT_WINDOW_SECONDS)

	count := cache.OrderRateLimitsCache.LoadOrSet(key, 1, expiration)
	if count == nil {
		return true
	}

	countInt, ok := count.(int)
	if !ok {
		return true
	}

	if countInt > limit {
		return true
	}

	cache.OrderRateLimitsCache.Set(key, countInt+1, expiration)
	return false
}

// authMiddleware resolves the bearer token against the :app_id route param
// and stores the auth context for the handler.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		errid := logger.GenErrorId()

		auth, err := h.services.Auth.Authenticate(h.db, c.GetHeader("Authorization"), c.Param("app_id"))
		if err != nil {
			code := domain.CodeForErr(err)
			if code == domain.CodeInternalError {
				h.log.TemplAuthErr("authenticate error: "+err.Error(), errid, c.Request.RequestURI, c.ClientIP())
				respondCode(c, code, domain.ErrMsgInternalServerError)
				return
			}
			respondCode(c, code, err.Error())
			return
		}

		c.Set(authContextKey, auth)
		c.Next()
	}
}

func authContext(c *gin.Context) *domain.AuthContext {
	auth, ok := c.Get(authContextKey)
	if !ok {
		return nil
	}
	ctx, ok := auth.(*domain.AuthContext)
	if !ok {
		return nil
	}
	return ctx
}
