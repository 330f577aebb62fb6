package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 给所有响应附加安全头
// API 只服务 JSON 与导出文件，禁止被嵌入 iframe、禁止 MIME 嗅探；
// CSP 中的 inline/eval 放宽是为兼容前端构建产物
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self' data:")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		c.Next()
	}
}
