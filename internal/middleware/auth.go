package middleware

import (
	"errors"
	"strings"

	"fitforge_backend/internal/appErrors"
	"fitforge_backend/internal/auth"
	"fitforge_backend/internal/logger"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	identityKey = "identity"
	tokenCookie = "token"
)

// Capability is one requirement an endpoint places on its caller.
// Guard evaluates a list of them in order and stops at the first failure.
type Capability interface {
	Check(c *gin.Context) *appErrors.AppError
}

// Guard composes capabilities into a single gin middleware.
func Guard(caps ...Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, capability := range caps {
			if appErr := capability.Check(c); appErr != nil {
				logger.CtxWarn(c.Request.Context(), "Access denied",
					"code", appErr.Code,
					"path", c.Request.URL.Path,
				)
				appErrors.Abort(c, appErr)
				return
			}
		}
		c.Next()
	}
}

// GetIdentity returns the identity stored by Authenticated.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok && identity != nil
}

type authenticated struct {
	tokens *auth.TokenManager
}

// Authenticated verifies the bearer token (or the "token" cookie) without a
// store lookup.
func Authenticated(tokens *auth.TokenManager) Capability {
	return authenticated{tokens: tokens}
}

func (a authenticated) Check(c *gin.Context) *appErrors.AppError {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		return appErrors.ErrUnauthorized
	}

	identity, err := a.tokens.ParseToken(tokenStr)
	if err != nil {
		return appErrors.ErrInvalidToken.WithError(err)
	}

	c.Set(identityKey, identity)
	c.Request = c.Request.WithContext(logger.WithUserEmail(c.Request.Context(), identity.Email))
	return nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie
	}
	return ""
}

type roleCapability struct {
	role  models.UserRole
	users repositories.UserRepository
}

// AdminRole requires the stored role of the caller to be admin.
func AdminRole(users repositories.UserRepository) Capability {
	return roleCapability{role: models.UserRoleAdmin, users: users}
}

// TrainerRole requires the stored role of the caller to be trainer.
func TrainerRole(users repositories.UserRepository) Capability {
	return roleCapability{role: models.UserRoleTrainer, users: users}
}

// Check reads the role fresh from the store; the token claim may be stale.
func (r roleCapability) Check(c *gin.Context) *appErrors.AppError {
	identity, ok := GetIdentity(c)
	if !ok {
		return appErrors.ErrUnauthorized
	}

	db, ok := dbFromContext(c)
	if !ok {
		return appErrors.InternalError(errors.New("db not found in request context"))
	}

	user, err := r.users.FindByEmail(db, identity.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrForbidden
		}
		return appErrors.InternalError(err)
	}
	if user.Role != r.role {
		return appErrors.ErrForbidden
	}
	return nil
}

type selfOnly struct{}

// SelfOnly requires the "email" query parameter to name the caller.
func SelfOnly() Capability {
	return selfOnly{}
}

func (selfOnly) Check(c *gin.Context) *appErrors.AppError {
	identity, ok := GetIdentity(c)
	if !ok {
		return appErrors.ErrUnauthorized
	}
	if !strings.EqualFold(strings.TrimSpace(c.Query("email")), identity.Email) {
		return appErrors.ErrIdentityMismatch
	}
	return nil
}

func dbFromContext(c *gin.Context) (*gorm.DB, bool) {
	v, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return nil, false
	}
	db, ok := v.(*gorm.DB)
	return db, ok
}
