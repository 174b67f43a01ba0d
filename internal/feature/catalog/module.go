package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glimmr/internal/domain"
	httpez "glimmr/internal/transport/http/ez"
)

type Module struct{ svc *Service }

func NewModule(svc *Service) *Module { return &Module{svc: svc} }

func (m *Module) Priority() int { return 20 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api.Group("/products"))

	httpez.RegisterAction(ez, httpez.Action[ListInput, []domain.Product]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *ListInput) ([]domain.Product, error) {
			q, err := in.Query()
			if err != nil {
				var qe *QueryError
				if errors.As(err, &qe) {
					return nil, httpez.BadRequest(qe.Error())
				}
				return nil, err
			}
			return m.svc.List(c.Request.Context(), q)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			return m.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})
}

type deleted struct {
	ID string `json:"id"`
}

func (m *Module) MountAdmin(admin *gin.RouterGroup) {
	ez := httpez.New(admin.Group("/products"))

	httpez.RegisterAction(ez, httpez.Action[ProductInput, *domain.Product]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *ProductInput) (*domain.Product, error) {
			return m.svc.Create(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[ProductPatch, *domain.Product]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *ProductPatch) (*domain.Product, error) {
			return m.svc.Update(c.Request.Context(), c.Param("id"), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, deleted]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (deleted, error) {
			id := c.Param("id")
			return deleted{ID: id}, m.svc.Delete(c.Request.Context(), id)
		},
	})
}
