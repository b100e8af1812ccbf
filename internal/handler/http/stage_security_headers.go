package http

import "github.com/MKhiriev/go-posts-api/internal/pipeline"

const stageSecurityHeaders = "security-headers"

type header struct {
	name, value string
}

// securityHeaders mirrors the helmet defaults, except that
// Cross-Origin-Resource-Policy allows cross-origin reads of the API.
var securityHeaders = []header{
	{"Content-Security-Policy", "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
		"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
		"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
		"upgrade-insecure-requests"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "cross-origin"},
	{"Origin-Agent-Cluster", "?1"},
	{"Referrer-Policy", "no-referrer"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Download-Options", "noopen"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"X-XSS-Protection", "0"},
}

func securityHeadersStage() pipeline.Stage {
	return pipeline.Func(stageSecurityHeaders, func(ex *pipeline.Exchange) pipeline.Result {
		h := ex.Writer.Header()
		for _, sh := range securityHeaders {
			h.Set(sh.name, sh.value)
		}
		h.Del("X-Powered-By")
		return pipeline.Proceed()
	})
}
