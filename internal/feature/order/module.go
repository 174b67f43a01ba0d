package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glimmr/internal/domain"
	httpez "glimmr/internal/transport/http/ez"
	mdw "glimmr/internal/transport/http/middleware"
)

type Module struct {
	svc  *Service
	auth gin.HandlerFunc
}

func NewModule(svc *Service, auth gin.HandlerFunc) *Module { return &Module{svc: svc, auth: auth} }

func (m *Module) Priority() int { return 50 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/orders")
	g.Use(m.auth)
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[CreateInput, *domain.Order]{
		Method: http.MethodPost,
		Path:   "/create",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Auth:   true,
		Handler: func(c *gin.Context, in *CreateInput) (*domain.Order, error) {
			return m.svc.Create(c.Request.Context(), mdw.UserID(c), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Order]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Order, error) {
			return m.svc.List(c.Request.Context(), mdw.UserID(c))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Order]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Order, error) {
			return m.svc.Get(c.Request.Context(), mdw.UserID(c), c.Param("id"))
		},
	})
}
