// Package web — JSON API витрины поверх shop.App. Каждый посетитель
// узнаётся по cookie-сессии и получает свой App.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/images"
	"storefront/internal/shop"
	"storefront/internal/store"
)

const (
	cookieMaxAge = 30 * 24 * 3600

	sessionName = "sf_session"
	visitorKey  = "visitor_id"
	visitorCtx  = "visitor"
)

// Pinger — хранилище, которое умеет проверять соединение
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options — параметры роутера
type Options struct {
	SessionSecret string
	ShopOptions   []shop.Option
}

// NewRouter собирает gin-роутер со всеми маршрутами
func NewRouter(st store.Store, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = 6 * images.MaxFileBytes

	secret := opts.SessionSecret
	if secret == "" {
		secret = "dev_fallback_secret"
	}
	cs := cookie.NewStore([]byte(secret))
	cs.Options(sessions.Options{Path: "/", MaxAge: cookieMaxAge, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, cs))

	h := &handlers{st: st, reg: newRegistry(st, opts.ShopOptions, cookieMaxAge*time.Second)}

	r.GET("/health", h.health)

	api := r.Group("/", h.withVisitor())
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addToCart)
	api.PUT("/cart/items/:id", h.updateCartItem)
	api.DELETE("/cart/items/:id", h.removeCartItem)

	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.POST("/logout", h.logout)
	api.GET("/me", h.me)

	seller := api.Group("/seller")
	seller.GET("/products", h.sellerProducts)
	seller.POST("/products", h.addProduct)
	seller.PATCH("/products/:id/stock", h.updateStock)
	seller.DELETE("/products/:id", h.deleteProduct)
	seller.GET("/images", h.listImages)
	seller.POST("/images", h.uploadImage)
	seller.DELETE("/images/:index", h.removeImage)
	seller.DELETE("/images", h.cancelImages)

	return r
}

// withVisitor находит (или заводит) посетителя по cookie и держит его
// блокировку до конца запроса
func (h *handlers) withVisitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(visitorKey).(string)
		if id == "" {
			id = uuid.NewString()
			sess.Set(visitorKey, id)
			if err := sess.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		v, err := h.reg.acquire(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer h.reg.release(id, v)
		v.mu.Lock()
		defer v.mu.Unlock()
		c.Set(visitorCtx, v)
		c.Next()
	}
}
