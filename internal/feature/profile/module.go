package profile

import (
	"errors"
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

func (m *Module) Priority() int { return 70 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api.Group("", m.auth))

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/user/profile",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return m.svc.Get(c.Request.Context(), mdw.UserID(c))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[Patch, *domain.User]{
		Method: http.MethodPut,
		Path:   "/user/profile",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *Patch) (*domain.User, error) {
			return m.svc.Update(c.Request.Context(), mdw.UserID(c), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/recommendations",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Product, error) {
			return m.svc.Recommendations(c.Request.Context(), mdw.UserID(c))
		},
	})
}

type listIn struct {
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
	Q      string `form:"q"`
}

type roleIn struct {
	Role string `json:"role" binding:"required"`
}

func (m *Module) MountAdmin(admin *gin.RouterGroup) {
	ez := httpez.New(admin.Group("/users"))

	httpez.RegisterAction(ez, httpez.Action[listIn, *UserPage]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *listIn) (*UserPage, error) {
			return m.svc.ListUsers(c.Request.Context(), in.Offset, in.Limit, in.Q)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[roleIn, *domain.User]{
		Method: http.MethodPut,
		Path:   "/:id/role",
		Binder: httpez.BindJSON,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *roleIn) (*domain.User, error) {
			u, err := m.svc.SetRole(c.Request.Context(), c.Param("id"), in.Role)
			if errors.Is(err, ErrBadRole) {
				return nil, httpez.BadRequest(err.Error())
			}
			return u, err
		},
	})
}
