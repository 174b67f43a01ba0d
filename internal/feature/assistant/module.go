package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpez "glimmr/internal/transport/http/ez"
)

type Module struct{ svc *Service }

func NewModule(svc *Service) *Module { return &Module{svc: svc} }

func (m *Module) Priority() int { return 60 }

func (m *Module) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api.Group("/chat"))

	httpez.RegisterAction(ez, httpez.Action[ChatInput, *ChatReply]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *ChatInput) (*ChatReply, error) {
			out, err := m.svc.Chat(c.Request.Context(), *in)
			if err != nil {
				return nil, httpez.Internal("Chat error", err)
			}
			return out, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[StyleInput, *StyleReply]{
		Method: http.MethodPost,
		Path:   "/clothing-recommendations",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *StyleInput) (*StyleReply, error) {
			out, err := m.svc.ClothingRecommendations(c.Request.Context(), *in)
			if err != nil {
				return nil, httpez.Internal("Recommendations error", err)
			}
			return out, nil
		},
	})
}
