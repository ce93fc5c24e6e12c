package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIdentity はレート制限のキーに使うクライアント識別子を返す。
// リバースプロキシ配下を想定し、X-Forwarded-Forの先頭アドレスを優先する。
// ヘッダーがない場合はRemoteAddrのホスト部を使用する。
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
