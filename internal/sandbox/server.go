package sandbox

import (
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gin-gonic/gin"

	"wheeladmin/internal/client"
)

// NewRouter serves the backend: JSON-RPC on POST /rpc and stored images
// under /images.
func NewRouter(b *Backend) (*gin.Engine, func(), error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName(client.Namespace, NewRPCService(b)); err != nil {
		return nil, nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/rpc", func(c *gin.Context) {
		ctx := c.Request.Context()
		if p := c.GetHeader(client.PrincipalHeader); p != "" {
			ctx = client.WithCaller(ctx, p)
		}
		srv.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
	r.GET("/images/*path", func(c *gin.Context) {
		content, contentType, ok := b.Image("/images" + c.Param("path"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, contentType, content)
	})
	return r, srv.Stop, nil
}
