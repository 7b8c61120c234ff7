package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/auth"
	"github.com/AxelBuee/TestLibBackendShadow/internal/repository"
)

// Register wires every route group onto the engine. Author routes need the
// admin scope, book and copy routes the write:author scope; member and
// checkout routes are open.
func Register(e *gin.Engine, db *gorm.DB, verifier auth.Verifier, startTime time.Time, version string) {
	NewHealthHandler(db, startTime, version).RegisterRoutes(e)

	admin := auth.RequireScopes(verifier, "admin")
	writeAuthor := auth.RequireScopes(verifier, "write:author")

	root := e.Group("")

	NewAuthorHandler(db).RegisterRoutes(root.Group("", admin))
	NewBookHandler(repository.NewGormBookRepository(db)).RegisterRoutes(root.Group("", writeAuthor))
	NewCopyHandler(db).RegisterRoutes(root.Group("", writeAuthor))
	NewMemberHandler(db).RegisterRoutes(root.Group(""))
	NewCheckoutHandler(repository.NewGormCheckoutRepository(db)).RegisterRoutes(root.Group(""))
	NewProtectedHandler(verifier).RegisterRoutes(root)
}
