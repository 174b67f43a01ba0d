package wishlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpez "glimmr/internal/transport/http/ez"
	mdw "glimmr/internal/transport/http/middleware"
)

type Module struct {
	svc  *Service
	auth gin.HandlerFunc
}

func NewModule(svc *Service, auth gin.HandlerFunc) *Module { return &Module{svc: svc, auth: auth} }

func (m *Module) Priority() int { return 40 }

type itemIn struct {
	ProductID string `json:"productId" binding:"required"`
}

func (m *Module) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/wishlist")
	g.Use(m.auth)
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[struct{}, *View]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*View, error) {
			return m.svc.Get(c.Request.Context(), mdw.UserID(c))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[itemIn, *View]{
		Method: http.MethodPost,
		Path:   "/add",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *itemIn) (*View, error) {
			return m.svc.Add(c.Request.Context(), mdw.UserID(c), in.ProductID)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[itemIn, *View]{
		Method: http.MethodPost,
		Path:   "/remove",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *itemIn) (*View, error) {
			return m.svc.Remove(c.Request.Context(), mdw.UserID(c), in.ProductID)
		},
	})
}
