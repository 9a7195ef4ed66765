package router

import (
	"github.com/apoiacoletivo/acs/internal/bridge"
	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/apoiacoletivo/acs/internal/handler"
	"github.com/apoiacoletivo/acs/internal/infinitepay"
	"github.com/apoiacoletivo/acs/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, client *infinitepay.Client, bridgeAdapter *bridge.Adapter, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "apoiacoletivo-service",
		})
	})

	flow := payment.NewFlow(client, client, bridgeAdapter, payment.NewGormStore(db))

	v1 := r.Group("/api/v1")
	{
		apoioHandler := handler.NewApoioHandler(db)
		apoiadorHandler := handler.NewApoiadorHandler(db)
		contributeHandler := handler.NewContributeHandler(flow)

		apoios := v1.Group("/apoios")
		{
			apoios.POST("", apoioHandler.CreateApoio)
			apoios.GET("", apoioHandler.GetApoios)
			apoios.GET("/:id", apoioHandler.GetApoio)
			apoios.PUT("/:id", apoioHandler.UpdateApoio)
			apoios.POST("/:id/finish", apoioHandler.FinishApoio)
			apoios.GET("/:id/apoiadores", apoiadorHandler.GetApoiadores)
			apoios.POST("/:id/apoiar", contributeHandler.Contribute)
		}

		v1.GET("/apoiadores/counts", apoiadorHandler.GetApoiadorCounts)

		checkoutHandler := handler.NewCheckoutHandler(client)
		checkout := v1.Group("/checkout")
		{
			checkout.POST("", checkoutHandler.CreateCheckout)
			checkout.GET("/verify", checkoutHandler.VerifyPayment)
		}

		v1.GET("/pagamento/retorno", contributeHandler.PaymentReturn)
	}

	return r
}

// corsMiddleware answers preflight requests with open-origin headers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Client-Info, Apikey")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
