package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpez "glimmr/internal/transport/http/ez"
)

type Module struct{ svc *Service }

func NewModule(svc *Service) *Module { return &Module{svc: svc} }

func (m *Module) Priority() int { return 10 }

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api.Group("/auth"))

	httpez.RegisterAction(ez, httpez.Action[RegisterInput, *Session]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *RegisterInput) (*Session, error) {
			return m.svc.Register(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[loginIn, *Session]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*Session, error) {
			return m.svc.Login(c.Request.Context(), in.Email, in.Password)
		},
	})
}
