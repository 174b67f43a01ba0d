package cart

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

func (m *Module) Priority() int { return 30 }

type addIn struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateIn struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type removeIn struct {
	ProductID string `json:"productId" binding:"required"`
}

func (m *Module) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/cart")
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

	httpez.RegisterAction(ez, httpez.Action[addIn, *View]{
		Method: http.MethodPost,
		Path:   "/add",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *addIn) (*View, error) {
			return m.svc.Add(c.Request.Context(), mdw.UserID(c), in.ProductID, in.Quantity)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[updateIn, *View]{
		Method: http.MethodPut,
		Path:   "/update",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (*View, error) {
			return m.svc.Update(c.Request.Context(), mdw.UserID(c), in.ProductID, in.Quantity)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[removeIn, *View]{
		Method: http.MethodPost,
		Path:   "/remove",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *removeIn) (*View, error) {
			return m.svc.Remove(c.Request.Context(), mdw.UserID(c), in.ProductID)
		},
	})

	// the storefront client deletes by path
	httpez.RegisterAction(ez, httpez.Action[struct{}, *View]{
		Method: http.MethodDelete,
		Path:   "/remove/:productId",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*View, error) {
			return m.svc.Remove(c.Request.Context(), mdw.UserID(c), c.Param("productId"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *View]{
		Method: http.MethodDelete,
		Path:   "/clear",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*View, error) {
			return m.svc.Clear(c.Request.Context(), mdw.UserID(c))
		},
	})
}
