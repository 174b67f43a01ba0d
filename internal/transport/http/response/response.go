package response

import "github.com/gin-gonic/gin"

type Resp struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

// New never emits "data": null.
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error builds a failure body; customMsg overrides the default text.
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// WithCause attaches the underlying error text. 500s pass it to the client.
func (r Resp) WithCause(err error) Resp {
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Abort writes r with the matching HTTP status and stops the chain.
func Abort(c *gin.Context, r Resp) {
	c.AbortWithStatusJSON(Status(r.Code), r)
}

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, OK(data))
}
