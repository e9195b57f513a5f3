// middleware/whatsapp_verification.go
package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VerifyWhatsAppSignature checks the X-Hub-Signature-256 header against the
// app secret. With an empty secret the check is skipped.
func VerifyWhatsAppSignature(appSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if appSecret == "" {
			c.Next()
			return
		}

		signature := c.GetHeader("X-Hub-Signature-256")
		if signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing signature"})
			return
		}

		// Read the request body
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		// Restore the body for subsequent handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		expectedSig := calculateHMAC(body, appSecret)
		if !hmac.Equal([]byte(signature), []byte("sha256="+expectedSig)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		c.Next()
	}
}

func calculateHMAC(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
