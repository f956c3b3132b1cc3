package middleware

import (
	"time"

	"github.com/evandrarf/lessonhub/internal/pkg/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultCookieName = "client_id"
	storeLocalsKey    = "client_store"
	clientLocalsKey   = "client_id"
)

// ClientScope gives every browser its own namespace of the shared store,
// identified by a long-lived uuid cookie.
func (m *Middleware) ClientScope() fiber.Handler {
	name := defaultCookieName
	secure := false
	if m.Config != nil {
		if v := m.Config.GetString("session.cookie_name"); v != "" {
			name = v
		}
		secure = m.Config.GetBool("session.secure")
	}

	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(name)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     name,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		ctx.Locals(clientLocalsKey, id)
		ctx.Locals(storeLocalsKey, storage.Scoped(m.Store, id))
		return ctx.Next()
	}
}

// ClientStore returns the store scoped by ClientScope.
func ClientStore(ctx *fiber.Ctx) storage.Store {
	if s, ok := ctx.Locals(storeLocalsKey).(storage.Store); ok {
		return s
	}
	return nil
}

func ClientID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(clientLocalsKey).(string)
	return id
}
