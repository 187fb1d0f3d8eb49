package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// fixedHeaderSet は全レスポンスに付与する固定ヘッダ
// CORSヘッダはローカル開発でのクロスオリジンアクセスを許可し、
// セキュリティヘッダはブラウザ側の基本的な防御を有効にする
var fixedHeaderSet = [...][2]string{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, OPTIONS"},
	{"Access-Control-Allow-Headers", "Content-Type"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"X-XSS-Protection", "1; mode=block"},
}

// fixedHeaders は固定ヘッダを付与するミドルウェアを返す
// ステータスコードに関わらず、レスポンスの確定前に必ず適用される
func fixedHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range fixedHeaderSet {
			c.Header(h[0], h[1])
		}
		c.Next()
	}
}

// handlePreflight はOPTIONSプリフライトリクエストに応答する
// 本文なしの200を返すだけで、ファイルシステムにはアクセスしない
func (s *Server) handlePreflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
